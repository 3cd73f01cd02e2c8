package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-accounts/internal/tui"
	"github.com/MKhiriev/go-accounts/models"
)

func (a *App) register(ctx context.Context, args []string) error {
	fs, _ := a.newFlagSet("register")
	email := fs.String("email", "", "account e-mail")
	name := fs.String("name", "", "display name")
	password := fs.String("password", "", "password (prompted when omitted)")
	fields := fieldsFlag{}
	fs.Var(fields, "field", "additional profile field key=value, repeatable")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		return ErrMissingEmail
	}
	pass, err := a.passwordOrPrompt(*password, "Password:")
	if err != nil {
		return err
	}

	created, err := a.adapter.Register(ctx, models.User{
		Email:    *email,
		Name:     *name,
		Password: pass,
		Extra:    fields,
	})
	if err != nil {
		return err
	}

	fmt.Fprint(a.out, tui.RenderUser(created))
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	fs, _ := a.newFlagSet("login")
	email := fs.String("email", "", "account e-mail")
	password := fs.String("password", "", "password (prompted when omitted)")
	copyToken := fs.Bool("copy", false, "copy the token to the clipboard")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *email == "" {
		return ErrMissingEmail
	}
	pass, err := a.passwordOrPrompt(*password, "Password:")
	if err != nil {
		return err
	}

	token, err := a.adapter.Login(ctx, models.Credentials{Email: *email, Password: pass})
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, token)

	if *copyToken {
		if err = a.clipboard(token); err != nil {
			a.logger.Warn().Err(err).Msg("copying token to clipboard failed")
			return nil
		}
		fmt.Fprintln(a.out, "token copied to clipboard")
	}
	return nil
}

func (a *App) profile(ctx context.Context, args []string) error {
	fs, token := a.newFlagSet("profile")
	if err := fs.Parse(args); err != nil {
		return err
	}
	a.applyToken(*token)

	user, err := a.adapter.Profile(ctx)
	if err != nil {
		return err
	}

	fmt.Fprint(a.out, tui.RenderUser(user))
	return nil
}

func (a *App) list(ctx context.Context, args []string) error {
	fs, token := a.newFlagSet("list")
	name := fs.String("name", "", "only accounts with exactly this name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	a.applyToken(*token)

	users, err := a.adapter.ListUsers(ctx, *name)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, tui.RenderUsers(users))
	return nil
}

func (a *App) update(ctx context.Context, args []string) error {
	fs, token := a.newFlagSet("update")
	id := fs.String("id", "", "account identifier")
	var name, email optionalString
	fs.Var(&name, "name", "new display name")
	fs.Var(&email, "email", "new e-mail")
	newPassword := fs.Bool("password", false, "prompt for a new password")
	var admin optionalBool
	fs.Var(&admin, "admin", "grant or revoke admin rights (admin only)")
	fields := fieldsFlag{}
	fs.Var(fields, "field", "profile field key=value to merge, repeatable")
	if err := fs.Parse(args); err != nil {
		return err
	}
	a.applyToken(*token)

	if *id == "" {
		return ErrMissingID
	}

	update := models.UserUpdate{
		Name:  name.ptr(),
		Email: email.ptr(),
	}
	if admin.set {
		update.IsAdm = &admin.value
	}
	if len(fields) > 0 {
		update.Extra = fields
	}
	if *newPassword {
		pass, err := a.prompt("New password:")
		if err != nil {
			return err
		}
		update.Password = &pass
	}
	if update.IsEmpty() {
		return ErrEmptyUpdate
	}

	updated, err := a.adapter.UpdateUser(ctx, *id, update)
	if err != nil {
		return err
	}

	fmt.Fprint(a.out, tui.RenderUser(updated))
	return nil
}

func (a *App) delete(ctx context.Context, args []string) error {
	fs, token := a.newFlagSet("delete")
	id := fs.String("id", "", "account identifier")
	if err := fs.Parse(args); err != nil {
		return err
	}
	a.applyToken(*token)

	if *id == "" {
		return ErrMissingID
	}

	if err := a.adapter.DeleteUser(ctx, *id); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "account %s deleted\n", *id)
	return nil
}

func (a *App) health(ctx context.Context, args []string) error {
	fs, _ := a.newFlagSet("health")
	if err := fs.Parse(args); err != nil {
		return err
	}

	status, err := a.adapter.Health(ctx)
	if err != nil {
		return err
	}

	fmt.Fprint(a.out, tui.RenderHealth(status))
	return nil
}
