package cli

import (
	"context"
	"fmt"
)

func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	if !a.auth.Login(ctx, username, password) {
		fmt.Fprintln(a.out, a.auth.State().Err)
		return nil
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", username)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout()
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Health(ctx context.Context) error {
	status := a.health.Check(ctx)
	fmt.Fprintf(a.out, "Backend: %s\n", status.Status)
	for _, check := range status.Checks {
		fmt.Fprintf(a.out, "  %-30s %s\n", check.Name, check.Status)
	}
	fmt.Fprintf(a.out, "  live=%v ready=%v\n", a.health.Live(ctx), a.health.Ready(ctx))
	return nil
}
