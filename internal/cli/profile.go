package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/aimandesu/portfolio-mobile/internal/navguard"
	"github.com/aimandesu/portfolio-mobile/internal/schema"
)

func (a *App) ShowProfile(_ context.Context) {
	p := a.session.Profile()
	if p == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return
	}
	fmt.Fprintf(a.out, "id:       %d\n", p.ID)
	fmt.Fprintf(a.out, "username: %s\n", p.Username)
	fmt.Fprintf(a.out, "name:     %s\n", p.Name)
	fmt.Fprintf(a.out, "email:    %s\n", p.Email)
	if p.Age != nil {
		fmt.Fprintf(a.out, "age:      %d\n", p.Age.Int64())
	}
	printOptional(a, "title", p.Title)
	printOptional(a, "about", p.About)
	printOptional(a, "location", p.Location)
	printOptional(a, "address", p.Address)
	if p.Image != nil {
		fmt.Fprintf(a.out, "image:    %s\n", p.Image.Remote())
	}
	if p.Resume != nil {
		fmt.Fprintf(a.out, "resume:   %s\n", p.Resume.Remote())
	}
}

func printOptional(a *App, label string, v *string) {
	if v != nil && *v != "" {
		fmt.Fprintf(a.out, "%-9s %s\n", label+":", *v)
	}
}

// EditProfile walks the editable fields, then either saves or consults the
// navigation guard before discarding unsaved changes.
func (a *App) EditProfile(ctx context.Context) {
	current := a.session.Profile()
	if current == nil {
		fmt.Fprintln(a.out, "Not logged in")
		return
	}

	edited := current.Clone()
	if err := a.editFields(edited); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	dirty := !profilesEqual(current, edited)

	save, err := confirm(a.reader, "Save changes?", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if save {
		if err := a.session.UpdateProfile(ctx, edited); err != nil {
			fmt.Fprintf(a.out, "Update unsuccessful: %v\n", err)
			return
		}
		fmt.Fprintln(a.out, "Profile updated")
		return
	}

	// leaving without saving; the guard decides whether edits are discarded
	left := false
	pending := navguard.Intercept(dirty, func() { left = true }, nil)
	if pending != nil {
		fmt.Fprintln(a.out, pending.Messages.Title)
		fmt.Fprintln(a.out, pending.Messages.Description)
		discard, err := confirm(a.reader, pending.Messages.ConfirmText+"?", a.out)
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return
		}
		if discard {
			pending.Confirm()
		} else {
			pending.Cancel()
		}
	}
	if left {
		if dirty {
			fmt.Fprintln(a.out, "Changes discarded")
		}
	} else if pending != nil {
		// user stayed; re-enter the edit flow with the pending values
		a.editAgain(ctx, edited)
	}
}

func (a *App) editAgain(ctx context.Context, edited *schema.Profile) {
	save, err := confirm(a.reader, "Save changes now?", a.out)
	if err != nil || !save {
		return
	}
	if err := a.session.UpdateProfile(ctx, edited); err != nil {
		fmt.Fprintf(a.out, "Update unsuccessful: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Profile updated")
}

func (a *App) editFields(p *schema.Profile) error {
	var err error
	if p.Username, err = getOptionalText(a.reader, "username", p.Username, a.out); err != nil {
		return err
	}
	if p.Name, err = getOptionalText(a.reader, "name", p.Name, a.out); err != nil {
		return err
	}
	if p.Email, err = getOptionalText(a.reader, "email", p.Email, a.out); err != nil {
		return err
	}

	ageStr := ""
	if p.Age != nil {
		ageStr = strconv.FormatInt(p.Age.Int64(), 10)
	}
	if ageStr, err = getOptionalText(a.reader, "age", ageStr, a.out); err != nil {
		return err
	}
	if ageStr == "" {
		p.Age = nil
	} else {
		n, err := strconv.ParseInt(ageStr, 10, 64)
		if err != nil {
			return fmt.Errorf("age must be numeric")
		}
		age := schema.Age(n)
		p.Age = &age
	}

	for _, f := range []struct {
		label string
		dst   **string
	}{
		{"title", &p.Title},
		{"about", &p.About},
		{"location", &p.Location},
		{"address", &p.Address},
	} {
		cur := ""
		if *f.dst != nil {
			cur = **f.dst
		}
		v, err := getOptionalText(a.reader, f.label, cur, a.out)
		if err != nil {
			return err
		}
		if v == "" {
			*f.dst = nil
		} else {
			val := v
			*f.dst = &val
		}
	}
	return nil
}

func profilesEqual(a, b *schema.Profile) bool {
	ptrEq := func(x, y *string) bool {
		if (x == nil) != (y == nil) {
			return false
		}
		return x == nil || *x == *y
	}
	ageEq := (a.Age == nil) == (b.Age == nil) && (a.Age == nil || *a.Age == *b.Age)
	return a.Username == b.Username && a.Name == b.Name && a.Email == b.Email &&
		ageEq && ptrEq(a.Title, b.Title) && ptrEq(a.About, b.About) &&
		ptrEq(a.Location, b.Location) && ptrEq(a.Address, b.Address)
}

func (a *App) UploadImage(ctx context.Context) {
	a.uploadFile(ctx, "image", a.session.UploadImage)
}

func (a *App) UploadResume(ctx context.Context) {
	a.uploadFile(ctx, "resume", a.session.UploadResume)
}

func (a *App) uploadFile(ctx context.Context, kind string, upload func(context.Context, schema.LocalFile) error) {
	path, err := getSimpleText(a.reader, "Enter path of the "+kind+" file", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	file := schema.LocalFile{
		URI:      "file://" + path,
		MimeType: mimeTypeFor(path),
		Name:     filepath.Base(path),
	}
	if err := upload(ctx, file); err != nil {
		fmt.Fprintf(a.out, "Upload unsuccessful: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Upload successful")
}

func mimeTypeFor(path string) string {
	switch filepath.Ext(path) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
