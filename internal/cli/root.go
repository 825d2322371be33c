package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	if p := a.session.Profile(); p != nil {
		return fmt.Sprintf("(%s)", p.Username)
	}
	return ""
}

func (a *App) isLoggedIn() bool {
	return a.session.Token() != ""
}

func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to the portfolio CLI (type 'help' for commands)")

	for {
		fmt.Fprintf(a.out, "portfolio %s> ", a.getStatus())
		line, err := a.reader.ReadString('\n')
		if err != nil {
			return
		}
		cmd := trimmed(line)
		if cmd == "" {
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(a.out, "Available commands: profile, edit, uploadimage, uploadresume, education, addedu, deledu, logout, reset, exit")
			} else {
				fmt.Fprintln(a.out, "Available commands: signup, login, exit")
			}

		case "signup":
			a.Signup(ctx)
		case "login":
			a.Login(ctx)
		case "logout":
			a.Logout(ctx)
		case "reset":
			a.Reset(ctx)

		case "profile":
			a.ShowProfile(ctx)
		case "edit":
			a.EditProfile(ctx)
		case "uploadimage":
			a.UploadImage(ctx)
		case "uploadresume":
			a.UploadResume(ctx)

		case "education":
			a.ListEducation(ctx)
		case "addedu":
			a.AddEducation(ctx)
		case "deledu":
			a.DeleteEducation(ctx)

		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return
		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

func trimmed(line string) string {
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line
}
