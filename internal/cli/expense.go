package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/mmynk/mrsplit/internal/ledger"
	"github.com/mmynk/mrsplit/internal/models"
)

type ExpenseCmd struct {
	Add  ExpenseAddCmd  `cmd:"" help:"Record an expense."`
	List ExpenseListCmd `cmd:"" help:"List expenses, newest first."`
	Show ExpenseShowCmd `cmd:"" help:"Show an expense and its splits."`
}

type ExpenseAddCmd struct {
	Group       string            `arg:"" help:"Group ID or name."`
	Payer       string            `required:"" help:"Member who paid."`
	Amount      string            `required:"" help:"Total amount, e.g. 12.34."`
	Title       string            `help:"Short title. Generated from the members if empty."`
	Description string            `help:"Optional note."`
	Members     []string          `short:"m" name:"member" sep:"none" help:"Member sharing the cost equally (repeatable). Defaults to every group member."`
	Weights     map[string]int64  `name:"weight" help:"Weighted share as id=N (repeatable)."`
	Shares      map[string]string `name:"share" help:"Exact share as id=12.34 (repeatable)."`
}

func (cmd *ExpenseAddCmd) Run(app *App) error {
	ctx := context.Background()
	groupID, err := app.Service.ResolveGroup(ctx, cmd.Group)
	if err != nil {
		return err
	}
	amount, err := app.Currency.Parse(cmd.Amount)
	if err != nil {
		return err
	}

	in := ledger.ExpenseInput{
		PayerID:     cmd.Payer,
		Amount:      amount,
		MemberIDs:   cmd.Members,
		Weights:     cmd.Weights,
		Title:       cmd.Title,
		Description: cmd.Description,
	}
	if len(cmd.Shares) > 0 {
		in.Shares = make(map[string]int64, len(cmd.Shares))
		for id, s := range cmd.Shares {
			share, err := app.Currency.Parse(s)
			if err != nil {
				return fmt.Errorf("share for %s: %w", id, err)
			}
			in.Shares[id] = share
		}
	}
	if len(in.Shares) == 0 && len(in.Weights) == 0 && len(in.MemberIDs) == 0 {
		l, err := app.Service.Ledger(ctx, groupID)
		if err != nil {
			return err
		}
		group := l.Group()
		in.MemberIDs = group.MemberIDs()
	}

	expense, err := app.Service.RecordExpense(ctx, groupID, in)
	if err != nil {
		return err
	}
	app.success("Recorded %s: %s paid by %s", expense.Title, app.styles.amount.Render(app.money(expense.Amount)), expense.PayerID)
	return app.printSplits(expense)
}

type ExpenseListCmd struct {
	Group string `arg:"" help:"Group ID or name."`
}

func (cmd *ExpenseListCmd) Run(app *App) error {
	ctx := context.Background()
	groupID, err := app.Service.ResolveGroup(ctx, cmd.Group)
	if err != nil {
		return err
	}
	expenses, err := app.Service.ListExpenses(ctx, groupID)
	if err != nil {
		return err
	}
	if len(expenses) == 0 {
		app.info("No expenses yet")
		return nil
	}

	t := newTable("#", "ID", "DATE", "KIND", "TITLE", "PAID BY", "AMOUNT").alignRight(0, 6)
	for _, e := range expenses {
		t.row(
			strconv.FormatInt(e.Seq+1, 10),
			e.ID,
			formatDate(e.CreatedAt),
			string(e.Kind),
			e.Title,
			e.PayerID,
			app.money(e.Amount),
		)
	}
	t.render(app)
	return nil
}

type ExpenseShowCmd struct {
	Group   string `arg:"" help:"Group ID or name."`
	Expense string `arg:"" help:"Expense ID."`
}

func (cmd *ExpenseShowCmd) Run(app *App) error {
	ctx := context.Background()
	groupID, err := app.Service.ResolveGroup(ctx, cmd.Group)
	if err != nil {
		return err
	}
	expense, err := app.Service.GetExpense(ctx, groupID, cmd.Expense)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(app.Out, "%s %s\n", app.styles.header.Render(expense.Title), app.styles.dim.Render(expense.ID))
	_, _ = fmt.Fprintf(app.Out, "Paid by %s on %s: %s\n", expense.PayerID, formatDate(expense.CreatedAt), app.styles.amount.Render(app.money(expense.Amount)))
	if expense.Description != "" {
		_, _ = fmt.Fprintln(app.Out, app.styles.dim.Render(expense.Description))
	}
	return app.printSplits(expense)
}

func (a *App) printSplits(expense *models.Expense) error {
	t := newTable("MEMBER", "SHARE").alignRight(1)
	for _, s := range expense.Splits {
		t.row(s.MemberID, a.money(s.Share))
	}
	t.render(a)
	return nil
}

func formatDate(unix int64) string {
	return time.Unix(unix, 0).UTC().Format("2006-01-02")
}
