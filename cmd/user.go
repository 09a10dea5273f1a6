package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/tunebox/internal/auth"
	"github.com/desertthunder/tunebox/internal/tasks"
	"github.com/urfave/cli/v3"
)

// resultError turns a failed [auth.Result] into a non-zero exit.
func resultError(res auth.Result) error {
	if res.Success {
		return nil
	}
	return cli.Exit(fmt.Sprintf("✗ %s", res.Message), 1)
}

// UserRegister creates an account. The new user is not logged in.
func (r *Runner) UserRegister(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	username, err := r.flagOrPrompt(cmd.String("username"), "Username", false)
	if err != nil {
		return err
	}
	password, err := r.flagOrPrompt(cmd.String("password"), "Password", true)
	if err != nil {
		return err
	}
	confirm := cmd.String("confirm")
	if confirm == "" && cmd.String("password") != "" {
		confirm = password
	}
	if confirm, err = r.flagOrPrompt(confirm, "Confirm password", true); err != nil {
		return err
	}

	res := r.manager.Register(ctx, username, password, confirm)
	if err := resultError(res); err != nil {
		return err
	}

	r.writePlain("✓ %s\n", res.Message)
	return r.writePlain("Run 'tunebox user login -u %s' to sign in\n", username)
}

// UserLogin authenticates and switches the library to the user's data.
func (r *Runner) UserLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	username, err := r.flagOrPrompt(cmd.String("username"), "Username", false)
	if err != nil {
		return err
	}
	password, err := r.flagOrPrompt(cmd.String("password"), "Password", true)
	if err != nil {
		return err
	}

	res := r.manager.Login(ctx, username, password)
	if err := resultError(res); err != nil {
		return err
	}

	r.writePlain("✓ %s\n", res.Message)
	return r.writePlain("Favorites: %d  History: %d\n", len(r.lib.Favorites()), len(r.lib.History()))
}

// UserLogout saves the current user's data and ends the session.
func (r *Runner) UserLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	username := r.manager.Username()
	r.manager.Logout(ctx)

	if username == "" {
		return r.writePlain("Not logged in\n")
	}
	return r.writePlain("✓ Logged out %s\n", username)
}

// UserWhoami prints the logged-in username.
func (r *Runner) UserWhoami(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	ui := r.manager.LoginUI()
	if !ui.ShowUserInfo {
		return r.writePlain("Not logged in\n")
	}
	return r.writePlain("%s\n", ui.Username)
}

// UserList prints the registered usernames, marking the current one.
func (r *Runner) UserList(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}

	users := r.manager.ExistingUsers(ctx)
	r.writePlainHeader(fmt.Sprintf("Users (%d)", len(users)))
	for _, u := range users {
		marker := " "
		if u.Username == r.manager.Username() {
			marker = "*"
		}
		r.writePlain("%s %s\n", marker, u.Username)
	}
	return nil
}

// UserExportAll writes every partition to disk, printing progress as partitions complete.
func (r *Runner) UserExportAll(ctx context.Context, cmd *cli.Command) error {
	if err := r.open(ctx); err != nil {
		return err
	}
	if err := r.manager.SaveUserData(ctx); err != nil {
		r.logger.Warn("failed to save current user before export", "error", err)
	}

	owners := []string{""}
	for _, u := range r.manager.ExistingUsers(ctx) {
		owners = append(owners, u.Username)
	}

	prog := make(chan tasks.ProgressUpdate, len(owners)*2+1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range prog {
			r.writePlain("%s\n", update.Message)
		}
	}()

	exporter := tasks.NewExporter(r.store, r.songs, r.logger)
	result, err := exporter.BulkExport(ctx, prog, owners, tasks.BulkExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("dir"),
		NumWorkers: cmd.Int("workers"),
	})
	close(prog)
	<-done
	if err != nil {
		return err
	}

	r.writePlainln("Exported %d/%d partitions to %s", result.SuccessfulExports, result.TotalPartitions, result.OutputDirectory)
	if result.FailedExports > 0 {
		return cli.Exit(fmt.Sprintf("✗ %d partitions failed to export", result.FailedExports), 1)
	}
	return nil
}
