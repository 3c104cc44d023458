// Command dbmanager lists, creates and deletes users, shows per-user stats and
// wipes the database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/pageza/healthtracker/backend/config"
	"github.com/pageza/healthtracker/backend/internal/database"
	"github.com/pageza/healthtracker/backend/internal/service"
	"github.com/pageza/healthtracker/backend/internal/types"
	"github.com/pageza/healthtracker/backend/pkg/logger"
)

const usage = `Usage:
  dbmanager list                                     list all users
  dbmanager create <username> <password> [email] [name]
  dbmanager delete <username>                        delete a user and all their data
  dbmanager stats <username>                         show a user's stats
  dbmanager reset -yes                               delete all data
`

var errUsage = errors.New("invalid arguments")

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New("warn")

	db, err := database.New(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, log); err != nil {
		fmt.Fprintf(os.Stderr, "failed to migrate database: %v\n", err)
		os.Exit(1)
	}

	admin := service.NewAdminService(db, service.NewAuthService(db, cfg.JWTSecret, log), log)
	if err := run(context.Background(), os.Args[1:], os.Stdout, admin); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		} else {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer, admin *service.AdminService) error {
	if len(args) == 0 {
		return errUsage
	}

	switch cmd, rest := args[0], args[1:]; cmd {
	case "list":
		return listUsers(ctx, out, admin)

	case "create":
		if len(rest) < 2 || len(rest) > 4 {
			return errUsage
		}
		req := types.SignupRequest{Username: rest[0], Password: rest[1]}
		if len(rest) > 2 {
			req.Email = rest[2]
		}
		if len(rest) > 3 {
			req.Name = rest[3]
		}
		user, err := admin.CreateUser(ctx, req)
		if err != nil {
			return userError(err)
		}
		fmt.Fprintf(out, "User %q created (id %s)\n", user.Username, user.ID)
		return nil

	case "delete":
		if len(rest) != 1 {
			return errUsage
		}
		if err := admin.DeleteUser(ctx, rest[0]); err != nil {
			return userError(err)
		}
		fmt.Fprintf(out, "User %q and all their data deleted\n", rest[0])
		return nil

	case "stats":
		if len(rest) != 1 {
			return errUsage
		}
		stats, err := admin.Stats(ctx, rest[0])
		if err != nil {
			return userError(err)
		}
		printStats(out, stats)
		return nil

	case "reset":
		fs := flag.NewFlagSet("reset", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		yes := fs.Bool("yes", false, "confirm deleting all data")
		if err := fs.Parse(rest); err != nil {
			return errUsage
		}
		if !*yes {
			return errors.New("refusing to reset without -yes")
		}
		if err := admin.Reset(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "Database reset, all data deleted")
		return nil
	}

	return errUsage
}

func userError(err error) error {
	var verr *types.ValidationError
	switch {
	case errors.As(err, &verr):
		return errors.New(verr.Message)
	case errors.Is(err, service.ErrUserExists):
		return errors.New("username or email already exists")
	case errors.Is(err, service.ErrUserNotFound):
		return errors.New("user not found")
	}
	return err
}

func listUsers(ctx context.Context, out io.Writer, admin *service.AdminService) error {
	users, err := admin.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Fprintln(out, "No users in database")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tNAME\tTARGET\tCREATED")
	for _, u := range users {
		email := "-"
		if u.Email != nil {
			email = *u.Email
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			u.ID, u.Username, email, u.Name, u.TargetCalories, u.CreatedAt.Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func printStats(out io.Writer, s *service.UserStats) {
	fmt.Fprintf(out, "Stats for %s\n", s.User.Username)
	fmt.Fprintf(out, "  Meals logged:       %d\n", s.Meals)
	fmt.Fprintf(out, "  Activities logged:  %d\n", s.Activities)
	fmt.Fprintf(out, "  Vitals entries:     %d\n", s.Vitals)
	if s.LatestWeight != nil {
		fmt.Fprintf(out, "  Latest weight:      %.1f kg\n", *s.LatestWeight)
	}
	if s.AverageDailyCalories != nil {
		fmt.Fprintf(out, "  Avg daily calories: %.0f\n", *s.AverageDailyCalories)
	}
	fmt.Fprintf(out, "  Target calories:    %d\n", s.User.TargetCalories)
}
