package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	loggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	Businesses(ctx context.Context) error
	NewBusiness(ctx context.Context) error
	Use(ctx context.Context) error
	Products(ctx context.Context) error
	UploadProducts(ctx context.Context) error
	Sales(ctx context.Context) error
	UploadSales(ctx context.Context) error
	Campaigns(ctx context.Context) error
	Generate(ctx context.Context) error
}

// runREPL starts the read–eval–print loop.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Command handlers print their own errors; the loop ignores returned errors
// to stay resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, out io.Writer, scanner *bufio.Scanner) {
	for {
		fmt.Fprintf(out, "promo> %s > ", statusFn())
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.loggedIn() {
				printlnFn("Available commands: whoami, businesses, newbusiness, use, products, upload-products, sales, upload-sales, campaigns, generate, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "businesses":
			_ = a.Businesses(ctx)

		case "newbusiness":
			_ = a.NewBusiness(ctx)

		case "use":
			_ = a.Use(ctx)

		case "products":
			_ = a.Products(ctx)

		case "upload-products":
			_ = a.UploadProducts(ctx)

		case "sales":
			_ = a.Sales(ctx)

		case "upload-sales":
			_ = a.UploadSales(ctx)

		case "campaigns":
			_ = a.Campaigns(ctx)

		case "generate":
			_ = a.Generate(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
