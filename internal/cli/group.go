package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mmynk/mrsplit/internal/models"
)

type GroupCmd struct {
	Create GroupCreateCmd `cmd:"" help:"Create a group."`
	List   GroupListCmd   `cmd:"" help:"List all groups."`
	Show   GroupShowCmd   `cmd:"" help:"Show a group and its members."`
}

type GroupCreateCmd struct {
	Name    string   `arg:"" help:"Group name."`
	Members []string `short:"m" name:"member" required:"" sep:"none" help:"Member as id or id=Name (repeatable)."`
}

func (cmd *GroupCreateCmd) Run(app *App) error {
	members, err := parseMembers(cmd.Members)
	if err != nil {
		return err
	}
	group, err := app.Service.CreateGroup(context.Background(), cmd.Name, members)
	if err != nil {
		return err
	}
	app.success("Created group %s (%s) with %d members", group.Name, group.ID, len(group.Members))
	return nil
}

type GroupListCmd struct {
	Member string `help:"Only list groups this member belongs to."`
}

func (cmd *GroupListCmd) Run(app *App) error {
	groups, err := app.Service.ListGroups(context.Background(), cmd.Member)
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		app.info("No groups yet")
		return nil
	}

	t := newTable("ID", "NAME", "MEMBERS")
	for _, g := range groups {
		t.row(g.ID, g.Name, strconv.Itoa(len(g.Members)))
	}
	t.render(app)
	return nil
}

type GroupShowCmd struct {
	Group string `arg:"" help:"Group ID or name."`
}

func (cmd *GroupShowCmd) Run(app *App) error {
	ctx := context.Background()
	groupID, err := app.Service.ResolveGroup(ctx, cmd.Group)
	if err != nil {
		return err
	}
	l, err := app.Service.Ledger(ctx, groupID)
	if err != nil {
		return err
	}
	group := l.Group()

	_, _ = fmt.Fprintf(app.Out, "%s %s\n", app.styles.header.Render(group.Name), app.styles.dim.Render(group.ID))
	t := newTable("MEMBER", "NAME")
	for _, m := range group.Members {
		t.row(m.ID, m.Name)
	}
	t.render(app)
	return nil
}

type MemberCmd struct {
	Add MemberAddCmd `cmd:"" help:"Add members to a group."`
}

type MemberAddCmd struct {
	Group   string   `arg:"" help:"Group ID or name."`
	Members []string `short:"m" name:"member" required:"" sep:"none" help:"Member as id or id=Name (repeatable)."`
}

func (cmd *MemberAddCmd) Run(app *App) error {
	members, err := parseMembers(cmd.Members)
	if err != nil {
		return err
	}
	ctx := context.Background()
	groupID, err := app.Service.ResolveGroup(ctx, cmd.Group)
	if err != nil {
		return err
	}
	added, err := app.Service.AddMembers(ctx, groupID, members)
	if err != nil {
		return err
	}
	if len(added) == 0 {
		app.info("All members already in the group")
		return nil
	}
	app.success("Added %d member(s) to %s", len(added), cmd.Group)
	return nil
}

// parseMembers parses "id" or "id=Name" specs. A bare id uses the id as
// display name.
func parseMembers(specs []string) ([]models.Member, error) {
	members := make([]models.Member, 0, len(specs))
	for _, spec := range specs {
		id, name, found := strings.Cut(spec, "=")
		id = strings.TrimSpace(id)
		name = strings.TrimSpace(name)
		if id == "" {
			return nil, fmt.Errorf("invalid member %q: id must not be empty", spec)
		}
		if !found || name == "" {
			name = id
		}
		members = append(members, models.Member{ID: id, Name: name})
	}
	return members, nil
}
