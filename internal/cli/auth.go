package cli

import (
	"context"
	"fmt"
)

func (a *App) Signup(ctx context.Context) {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	confirmation, err := getPassword("Confirm password", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	if err := a.session.Signup(ctx, username, name, email, password, confirmation); err != nil {
		fmt.Fprintf(a.out, "Signup unsuccessful: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Signup successful")
}

func (a *App) Login(ctx context.Context) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	if err := a.session.Login(ctx, email, password); err != nil {
		fmt.Fprintf(a.out, "Login unsuccessful: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Login successful")
}

func (a *App) Logout(ctx context.Context) {
	if err := a.session.Logout(ctx); err != nil {
		fmt.Fprintf(a.out, "Logout error: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Logged out")
}

func (a *App) Reset(ctx context.Context) {
	a.session.ResetStorage(ctx)
	fmt.Fprintln(a.out, "Local session cleared")
}
