package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dusk-indust/useradmin/internal/render"
	"github.com/dusk-indust/useradmin/internal/userapi"
	"github.com/dusk-indust/useradmin/internal/userstore"
)

func (a *app) runList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	page := fs.Int("page", 1, "page to fetch")
	query := fs.String("q", "", "filter the page by name or email")
	asJSON := fs.Bool("json", false, "write the state as JSON")
	avatar := fs.Bool("avatar", false, "show the avatar column")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store := a.newStore()
	if err := store.SetCurrentPage(ctx, *page); err != nil {
		return err
	}
	store.SetSearchQuery(*query)

	st := store.Snapshot()
	if *asJSON {
		return render.JSON(a.out, st, time.Now())
	}
	opts := a.opts
	opts.ShowAvatar = *avatar
	return render.Users(a.out, st, opts)
}

func (a *app) runGet(ctx context.Context, args []string) error {
	id, rest, err := splitID(args)
	if err != nil {
		return fmt.Errorf("usage: useradmin get ID: %w", err)
	}
	fs := flag.NewFlagSet("get", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "write the user as JSON")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	u, err := a.newStore().GetUser(ctx, id)
	if err != nil {
		return err
	}
	if *asJSON {
		return writeJSON(a.out, u)
	}
	return render.User(a.out, u, a.opts.Theme)
}

// userFlags registers the fields shared by add and update.
func userFlags(fs *flag.FlagSet, in *userapi.UserInput) {
	fs.StringVar(&in.FirstName, "first", "", "first name")
	fs.StringVar(&in.LastName, "last", "", "last name")
	fs.StringVar(&in.Email, "email", "", "email address")
	fs.StringVar(&in.Avatar, "avatar", "", "avatar URL")
}

func (a *app) runAdd(ctx context.Context, args []string) error {
	var in userapi.UserInput
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	userFlags(fs, &in)
	page := fs.Int("page", 1, "page to load before adding")
	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := a.loadedStore(ctx, *page)
	if err != nil {
		return err
	}
	u, err := store.AddUser(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Added user %d.\n", u.ID)
	return render.Users(a.out, store.Snapshot(), a.opts)
}

func (a *app) runUpdate(ctx context.Context, args []string) error {
	id, rest, err := splitID(args)
	if err != nil {
		return fmt.Errorf("usage: useradmin update ID -first NAME -last NAME -email EMAIL: %w", err)
	}
	var in userapi.UserInput
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	userFlags(fs, &in)
	page := fs.Int("page", 1, "page to load before updating")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	store, err := a.loadedStore(ctx, *page)
	if err != nil {
		return err
	}
	if err := store.UpdateUser(ctx, id, in); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated user %d.\n", id)
	return render.Users(a.out, store.Snapshot(), a.opts)
}

func (a *app) runDelete(ctx context.Context, args []string) error {
	id, rest, err := splitID(args)
	if err != nil {
		return fmt.Errorf("usage: useradmin delete ID: %w", err)
	}
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	page := fs.Int("page", 1, "page to load before deleting")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	store, err := a.loadedStore(ctx, *page)
	if err != nil {
		return err
	}
	if err := store.DeleteUser(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted user %d.\n", id)
	return render.Users(a.out, store.Snapshot(), a.opts)
}

func (a *app) runSearch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "write matches as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	query := strings.Join(fs.Args(), " ")
	if query == "" {
		return fmt.Errorf("usage: useradmin search QUERY")
	}

	users, err := a.newStore().SearchRemote(ctx, query)
	if err != nil {
		return err
	}
	if *asJSON {
		return writeJSON(a.out, users)
	}
	if err := render.Table(a.out, users, a.opts); err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.out, "%d match(es) for %q\n", len(users), query)
	return err
}

// loadedStore returns a store with page already fetched, so local echoes
// of a mutation land in a real list.
func (a *app) loadedStore(ctx context.Context, page int) (*userstore.Store, error) {
	store := a.newStore()
	if err := store.SetCurrentPage(ctx, page); err != nil {
		return nil, err
	}
	return store, nil
}

// splitID takes the user id from the first argument, or from the last when
// flags come first.
func splitID(args []string) (int, []string, error) {
	if len(args) == 0 {
		return 0, nil, fmt.Errorf("missing user id")
	}
	raw, rest := args[0], args[1:]
	if strings.HasPrefix(raw, "-") {
		raw, rest = args[len(args)-1], args[:len(args)-1]
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, nil, fmt.Errorf("invalid user id %q", raw)
	}
	return id, rest, nil
}
