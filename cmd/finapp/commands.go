package main

import (
	"cmp"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"

	personapp "github.com/finapp2p/backend/internal/application/person"
	"github.com/finapp2p/backend/internal/domain/person"
	"github.com/finapp2p/backend/internal/domain/shared"
	"github.com/finapp2p/backend/internal/interfaces/http/dto"
	"github.com/goccy/go-json"
)

// errUsage marks bad command lines
var errUsage = errors.New("usage")

type app struct {
	service *personapp.PersonService
	seeder  *personapp.DemoSeeder
	out     io.Writer
}

type command func(ctx context.Context, args []string) error

func (a *app) commands() map[string]command {
	return map[string]command{
		"seed":   a.seed,
		"list":   a.list,
		"show":   a.show,
		"create": a.create,
		"toggle": a.toggle,
		"delete": a.delete,
		"lookup": a.lookup,
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", errUsage)
	}
	cmd, ok := a.commands()[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
	return cmd(ctx, args[1:])
}

func (a *app) seed(ctx context.Context, _ []string) error {
	seeded, err := a.seeder.EnsureDemoData(ctx)
	if err != nil {
		return err
	}
	return a.print(map[string]bool{"seeded": seeded})
}

func (a *app) list(ctx context.Context, args []string) error {
	fs := newFlagSet("list")
	query := fs.String("q", "", "Case-insensitive match on name and document")
	types := fs.String("type", "", "Comma separated: pf,pj")
	statuses := fs.String("status", "", "Comma separated: active,inactive")
	roles := fs.String("role", "", "Comma separated roles")
	document := fs.String("document", "", "Exact CPF/CNPJ")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	criteria := person.Criteria{
		Query:    *query,
		Roles:    person.NewSet(strings.Split(*roles, ",")...),
		Statuses: person.NewSet(strings.Split(*statuses, ",")...),
		Types:    person.NewSet(strings.Split(*types, ",")...),
	}

	var persons []person.Person
	if strings.TrimSpace(*document) != "" {
		p, found, err := a.service.FindByDocument(ctx, *document)
		if err != nil {
			return err
		}
		if found {
			persons = criteria.Apply([]person.Person{p})
		}
	} else {
		var err error
		if persons, err = a.service.List(ctx, criteria); err != nil {
			return err
		}
	}

	slices.SortStableFunc(persons, func(x, y person.Person) int {
		return cmp.Or(
			strings.Compare(x.Common().Name, y.Common().Name),
			strings.Compare(x.Common().ID, y.Common().ID),
		)
	})
	rows := make([]person.Row, 0, len(persons))
	for _, p := range persons {
		rows = append(rows, person.RowWithTimestamps(p))
	}
	return a.print(rows)
}

func (a *app) show(ctx context.Context, args []string) error {
	id, err := singleArg("show <id>", args)
	if err != nil {
		return err
	}
	p, err := a.service.Get(ctx, id)
	if err != nil {
		return err
	}
	return a.print(person.RowWithTimestamps(p))
}

func (a *app) create(ctx context.Context, args []string) error {
	fs := newFlagSet("create")
	typeKey := fs.String("type", "pf", "pf or pj")
	name := fs.String("name", "", "Full or corporate name")
	document := fs.String("document", "", "CPF or CNPJ")
	email := fs.String("email", "", "Contact email")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *typeKey != "pf" && *typeKey != "pj" {
		return person.NewValidationError("type", "must be pf or pj")
	}

	p := a.service.NewDraft(person.TypeFromKey(*typeKey))
	base := p.Common()
	base.Name = *name
	base.Document = *document
	if strings.TrimSpace(*email) != "" {
		base.Email = person.StringPtr(strings.TrimSpace(*email))
	}

	if err := a.service.Save(ctx, p, true); err != nil {
		return err
	}
	return a.print(person.RowWithTimestamps(p))
}

func (a *app) toggle(ctx context.Context, args []string) error {
	id, err := singleArg("toggle <id>", args)
	if err != nil {
		return err
	}
	p, err := a.service.ToggleActive(ctx, id)
	if err != nil {
		return err
	}
	return a.print(person.RowWithTimestamps(p))
}

func (a *app) delete(ctx context.Context, args []string) error {
	id, err := singleArg("delete <id>", args)
	if err != nil {
		return err
	}
	if err := a.service.Delete(ctx, id); err != nil {
		return err
	}
	return a.print(map[string]string{"deleted": id})
}

func (a *app) lookup(ctx context.Context, args []string) error {
	fs := newFlagSet("lookup")
	save := fs.Bool("save", false, "Store the company when it is not registered yet")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	cnpj, err := singleArg("lookup [-save] <cnpj>", fs.Args())
	if err != nil {
		return err
	}

	result, err := a.service.LookupCompany(ctx, cnpj, nil)
	if err != nil {
		return err
	}
	if *save && !result.Existing {
		if err := a.service.Save(ctx, result.Person, true); err != nil {
			return err
		}
	}
	return a.print(dto.NewCompanyLookupResponse(result.Person, result.Existing))
}

func (a *app) print(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, string(data))
	return err
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %s: %v", errUsage, fs.Name(), err)
	}
	return nil
}

func singleArg(usage string, args []string) (string, error) {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return "", fmt.Errorf("%w: finapp %s", errUsage, usage)
	}
	return args[0], nil
}

// exitCode maps an error to the process exit status
func exitCode(err error) int {
	switch {
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		return 2
	case errors.Is(err, shared.ErrValidation):
		return 3
	case errors.Is(err, shared.ErrNotFound):
		return 4
	case errors.Is(err, shared.ErrDuplicateDocument):
		return 5
	default:
		return 1
	}
}
