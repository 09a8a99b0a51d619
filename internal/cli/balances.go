package cli

import (
	"context"
	"errors"
	"fmt"
)

type BalancesCmd struct {
	Group  string `arg:"" optional:"" help:"Group ID or name."`
	Member string `help:"Show one member's balance in each of their groups."`
}

func (cmd *BalancesCmd) Run(app *App) error {
	if cmd.Member != "" {
		return cmd.runMember(app)
	}
	if cmd.Group == "" {
		return errors.New("a group or --member is required")
	}

	ctx := context.Background()
	groupID, err := app.Service.ResolveGroup(ctx, cmd.Group)
	if err != nil {
		return err
	}
	summary, err := app.Service.Balances(ctx, groupID)
	if err != nil {
		return err
	}

	t := newTable("MEMBER", "OWED TO THEM", "THEY OWE", "NET").alignRight(1, 2, 3)
	for _, b := range summary.Balances {
		t.row(summary.Name(b.MemberID), app.money(b.OwedToThem), app.money(b.TheyOwe), app.signed(b.Net))
	}
	t.render(app)
	return nil
}

// runMember prints the member's balance per group, limited to cmd.Group if
// one is given, followed by the total across all of their groups.
func (cmd *BalancesCmd) runMember(app *App) error {
	ctx := context.Background()
	var groupID string
	if cmd.Group != "" {
		id, err := app.Service.ResolveGroup(ctx, cmd.Group)
		if err != nil {
			return err
		}
		groupID = id
	}
	summary, err := app.Service.MemberSummary(ctx, cmd.Member)
	if err != nil {
		return err
	}

	t := newTable("GROUP", "OWED TO THEM", "THEY OWE", "NET").alignRight(1, 2, 3)
	for _, g := range summary.Groups {
		if groupID != "" && g.GroupID != groupID {
			continue
		}
		t.row(g.GroupName, app.money(g.Balance.OwedToThem), app.money(g.Balance.TheyOwe), app.signed(g.Balance.Net))
	}
	if groupID == "" {
		t.row("Total", app.money(summary.Total.OwedToThem), app.money(summary.Total.TheyOwe), app.signed(summary.Total.Net))
	}
	t.render(app)
	return nil
}

type SettleCmd struct {
	Group string `arg:"" help:"Group ID or name."`
}

func (cmd *SettleCmd) Run(app *App) error {
	ctx := context.Background()
	groupID, err := app.Service.ResolveGroup(ctx, cmd.Group)
	if err != nil {
		return err
	}
	summary, err := app.Service.Balances(ctx, groupID)
	if err != nil {
		return err
	}
	transfers, err := app.Service.Settle(ctx, groupID)
	if err != nil {
		return err
	}
	if len(transfers) == 0 {
		app.success("All settled up")
		return nil
	}

	for _, tr := range transfers {
		_, _ = fmt.Fprintf(app.Out, "%s %s pays %s %s\n",
			app.styles.info.Render(infoSymbol),
			summary.Name(tr.From),
			summary.Name(tr.To),
			app.styles.amount.Render(app.money(tr.Amount)),
		)
	}
	return nil
}

// signed renders a net position with an explicit + for positive values.
func (a *App) signed(amount int64) string {
	if amount > 0 {
		return "+" + a.money(amount)
	}
	return a.money(amount)
}
