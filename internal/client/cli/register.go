package cli

import (
	"context"
	"fmt"

	"github.com/linkupapp/linkup/internal/client/session"
	"github.com/linkupapp/linkup/internal/validation"
)

func (c *Cli) runRegister(ctx context.Context) error {
	c.io.Println("=== Register ===")
	c.io.Println("")

	name, err := c.io.ReadInput("Name: ")
	if err != nil {
		return fmt.Errorf("failed to read name: %w", err)
	}
	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	gender, err := c.io.ReadInput("Gender (male/female): ")
	if err != nil {
		return fmt.Errorf("failed to read gender: %w", err)
	}
	if err := validation.ValidateGender(gender); err != nil {
		return err
	}
	dob, err := c.io.ReadInput("Date of birth (MM/DD/YYYY): ")
	if err != nil {
		return fmt.Errorf("failed to read date of birth: %w", err)
	}
	if err := validation.ValidateDateOfBirth(dob); err != nil {
		return err
	}
	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	rePassword, err := c.io.ReadPassword("Repeat password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	c.io.Println("")
	c.io.Println("Creating account...")

	err = c.session.Register(ctx, session.RegisterParams{
		Name:        name,
		Email:       email,
		Password:    password,
		RePassword:  rePassword,
		DateOfBirth: dob,
		Gender:      gender,
	})
	if err != nil {
		return err
	}

	c.io.Println("")
	c.io.Println("Account created. Run 'linkup login' to sign in.")
	return nil
}
