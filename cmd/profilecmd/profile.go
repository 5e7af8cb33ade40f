// Package profilecmd contains the user profile commands
package profilecmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/finanza/cmd/root"
)

var (
	name     string
	jobTitle string
	location string
	phone    string
	email    string
)

// Cmd represents the profile command group
var Cmd = &cobra.Command{
	Use:   "profile",
	Short: "Show and update the user profile",
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored user profile",
	Run:   showFunc,
}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Update user profile fields",
	Long:  `Update the user profile. Only the flags you pass are changed.`,
	Run:   setFunc,
}

func init() {
	setCmd.Flags().StringVar(&name, "name", "", "Display name")
	setCmd.Flags().StringVar(&jobTitle, "job", "", "Job title")
	setCmd.Flags().StringVar(&location, "location", "", "Location")
	setCmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	setCmd.Flags().StringVar(&email, "email", "", "Email address")

	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(setCmd)
}

func showFunc(cmd *cobra.Command, args []string) {
	app, err := root.OpenApp(context.Background())
	if err != nil {
		root.Log.Fatalf("Failed to open ledger: %v", err)
	}
	defer app.Close()

	p, err := app.Profiles.Load()
	if err != nil {
		root.Log.Fatalf("Failed to load profile: %v", err)
	}

	fmt.Printf("Name:     %s\n", p.Name)
	fmt.Printf("Job:      %s\n", p.JobTitle)
	fmt.Printf("Location: %s\n", p.Location)
	fmt.Printf("Phone:    %s\n", p.Phone)
	fmt.Printf("Email:    %s\n", p.Email)
}

func setFunc(cmd *cobra.Command, args []string) {
	app, err := root.OpenApp(context.Background())
	if err != nil {
		root.Log.Fatalf("Failed to open ledger: %v", err)
	}
	defer app.Close()

	p, err := app.Profiles.Load()
	if err != nil {
		root.Log.Fatalf("Failed to load profile: %v", err)
	}

	if cmd.Flags().Changed("name") {
		p.Name = name
	}
	if cmd.Flags().Changed("job") {
		p.JobTitle = jobTitle
	}
	if cmd.Flags().Changed("location") {
		p.Location = location
	}
	if cmd.Flags().Changed("phone") {
		p.Phone = phone
	}
	if cmd.Flags().Changed("email") {
		p.Email = email
	}

	if err := app.Profiles.Save(p); err != nil {
		root.Log.Fatalf("Failed to save profile: %v", err)
	}
	root.Log.Info("Profile updated")
}
