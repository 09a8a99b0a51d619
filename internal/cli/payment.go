package cli

import (
	"context"

	"github.com/mmynk/mrsplit/internal/ledger"
)

type PaymentCmd struct {
	Add PaymentAddCmd `cmd:"" help:"Record a payment from one member to another."`
}

type PaymentAddCmd struct {
	Group  string `arg:"" help:"Group ID or name."`
	From   string `required:"" help:"Member who paid."`
	To     string `required:"" help:"Member who received the money."`
	Amount string `required:"" help:"Amount paid, e.g. 12.34."`
	Note   string `help:"Optional note."`
}

func (cmd *PaymentAddCmd) Run(app *App) error {
	ctx := context.Background()
	groupID, err := app.Service.ResolveGroup(ctx, cmd.Group)
	if err != nil {
		return err
	}
	amount, err := app.Currency.Parse(cmd.Amount)
	if err != nil {
		return err
	}
	if _, err := app.Service.RecordPayment(ctx, groupID, ledger.PaymentInput{
		From:   cmd.From,
		To:     cmd.To,
		Amount: amount,
		Note:   cmd.Note,
	}); err != nil {
		return err
	}
	app.success("Recorded payment: %s paid %s %s", cmd.From, cmd.To, app.styles.amount.Render(app.money(amount)))
	return nil
}
