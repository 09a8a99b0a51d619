package cli

import (
	"github.com/alecthomas/kong"

	"github.com/mmynk/mrsplit/internal/config"
)

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	config.Config `embed:""`
}

type Commands struct {
	Globals

	Version kong.VersionFlag `help:"Show version information."`

	Group    GroupCmd    `cmd:"" help:"Manage groups."`
	Member   MemberCmd   `cmd:"" help:"Manage group members."`
	Expense  ExpenseCmd  `cmd:"" help:"Record and inspect expenses."`
	Payment  PaymentCmd  `cmd:"" help:"Record settle-up payments."`
	Balances BalancesCmd `cmd:"" help:"Show what each member owes and is owed."`
	Activity ActivityCmd `cmd:"" help:"Show recent expenses across a member's groups."`
	Settle   SettleCmd   `cmd:"" help:"Suggest the transfers that settle a group."`
}
