package cli

import "context"

type ActivityCmd struct {
	Member string `arg:"" help:"Member ID."`
	Limit  int    `help:"Maximum number of entries." default:"${activity_limit}"`
}

func (cmd *ActivityCmd) Run(app *App) error {
	items, err := app.Service.Activity(context.Background(), cmd.Member, cmd.Limit)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		app.info("No activity yet")
		return nil
	}

	t := newTable("DATE", "GROUP", "TITLE", "PAID BY", "AMOUNT", "SHARE").alignRight(4, 5)
	for _, item := range items {
		e := item.Expense
		t.row(
			formatDate(e.CreatedAt),
			item.GroupName,
			e.Title,
			item.PayerName,
			app.money(e.Amount),
			app.money(e.ShareOf(cmd.Member)),
		)
	}
	t.render(app)
	return nil
}
