package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/promogpt/promoctl/internal/client/api"
)

// Campaigns lists generated campaigns for the selected business.
func (a *App) Campaigns(ctx context.Context) error {
	if !a.requireAuth(ctx) || !a.requireBusiness() {
		return nil
	}

	campaigns, err := a.api.ListCampaigns(ctx, a.business)
	if err != nil {
		a.printAuthError(err)
		return err
	}
	if len(campaigns) == 0 {
		printlnFn("No campaigns yet. Run 'generate' to create one.")
		return nil
	}
	for _, c := range campaigns {
		fmt.Fprintf(a.out, "#%d\t%s\tbudget %.2f\t%s\n", c.ID, c.Goal, c.Budget, c.CreatedAt)
	}
	return nil
}

// Generate requests a new campaign (captions, ad copy, calendar) and prints
// the generated payload.
func (a *App) Generate(ctx context.Context) error {
	if !a.requireAuth(ctx) || !a.requireBusiness() {
		return nil
	}

	goal, err := getSimpleText(a.reader, "Campaign goal", a.out)
	if err != nil {
		return err
	}
	rawBudget, err := getSimpleText(a.reader, "Budget", a.out)
	if err != nil {
		return err
	}
	budget, err := strconv.ParseFloat(rawBudget, 64)
	if err != nil {
		printlnFn("Budget must be a number.")
		return err
	}

	printlnFn("Generating campaign, this can take a while...")
	campaign, err := a.api.GenerateCampaign(ctx, a.business, api.CampaignRequest{Goal: goal, Budget: budget})
	if err != nil {
		a.printAuthError(err)
		return err
	}

	fmt.Fprintf(a.out, "Campaign #%d (%s)\n", campaign.ID, campaign.Goal)
	for section, content := range campaign.Payload {
		fmt.Fprintf(a.out, "-- %s --\n%v\n", section, content)
	}
	return nil
}
