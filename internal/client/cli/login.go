package cli

import (
	"context"
	"fmt"
)

func (c *Cli) runLogin(ctx context.Context) error {
	c.io.Println("=== Login ===")
	c.io.Println("")

	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	c.io.Println("")
	c.io.Println("Signing in...")

	identity, err := c.session.Login(ctx, email, password)
	if err != nil {
		return err
	}

	c.io.Println("")
	c.io.Printf("Signed in as %s\n", identity.Name)
	c.io.Println("Your session has been saved.")
	return nil
}
