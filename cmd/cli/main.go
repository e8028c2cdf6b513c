package main

import (
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"

	"termbase/internal/config"
	"termbase/internal/database"
	"termbase/pkg/utils"
)

var apiBaseURL string
var sessionToken string

type ResponseError struct {
	Message string `json:"message"`
}

var apiServiceBase = func() *resty.Client {
	return resty.New().
		SetBaseURL(apiBaseURL).
		SetHeader("Accept", "application/json").
		SetAuthToken(sessionToken).
		SetError(&ResponseError{}).
		OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
			if resp.StatusCode() >= 400 {
				return fmt.Errorf("%s", resp.Error().(*ResponseError).Message)
			}

			return nil
		})
}

var rootCmd = &cobra.Command{
	Use:   "termbase",
	Short: "Termbase CLI",
}

var bootstrapUsername string
var bootstrapEmail string
var bootstrapPassword string

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Initialize the database: schema, admin account, default categories and sample terms",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		db, err := database.Connect(cfg)
		if err != nil {
			return err
		}

		if err := database.Migrate(db); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		password := bootstrapPassword
		if password == "" {
			password = utils.GenerateRandomString(12)
		}

		admin, created, err := database.EnsureAdmin(db, bootstrapUsername, bootstrapEmail, password)
		if err != nil {
			return fmt.Errorf("admin bootstrap failed: %w", err)
		}

		if err := database.Seed(db, admin.ID); err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}

		if created {
			fmt.Println("Admin account created")
			fmt.Println("Username :", admin.Username)
			fmt.Println("Email    :", admin.Email)
			fmt.Println("Password :", password)
		} else {
			fmt.Println("Admin account already exists, skipping")
		}
		fmt.Println("Bootstrap complete")

		return nil
	},
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create <username> <email>",
	Short: "Create a new user",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		username := args[0]
		email := args[1]
		password := utils.GenerateRandomString(12)

		resp, err := apiServiceBase().R().
			SetBody(map[string]string{
				"username": username,
				"email":    email,
				"password": password,
			}).
			SetResult(&database.User{}).
			Post("/admin/users")

		if err != nil {
			fmt.Println("Error:", err)
			return
		}

		user := resp.Result().(*database.User)

		fmt.Println("User ID  :", user.ID)
		fmt.Println("Username :", user.Username)
		fmt.Println("Email    :", user.Email)
		fmt.Println("Role     :", user.Role)
		fmt.Println("Password :", password)
	},
}

var userResetPasswordCmd = &cobra.Command{
	Use:   "reset-password <user_id>",
	Short: "Reset a user's password",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		userID := args[0]

		type resetResult struct {
			UserID   uint   `json:"user_id"`
			Username string `json:"username"`
			Password string `json:"password"`
		}

		resp, err := apiServiceBase().R().
			SetResult(&resetResult{}).
			Post(fmt.Sprintf("/admin/users/%s/reset-password", userID))

		if err != nil {
			fmt.Println("Error:", err)
			return
		}

		result := resp.Result().(*resetResult)

		fmt.Println("User ID  :", result.UserID)
		fmt.Println("Username :", result.Username)
		fmt.Println("Password :", result.Password)
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List users",
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := apiServiceBase().R().
			SetResult(&[]database.User{}).
			Get("/admin/users")

		if err != nil {
			fmt.Println("Error:", err)
			return
		}

		users := resp.Result().(*[]database.User)

		for _, user := range *users {
			online := ""
			if user.IsOnline {
				online = " [online]"
			}
			fmt.Printf("%d\t%s\t%s\t%s%s\n", user.ID, user.Username, user.Email, user.Role, online)
		}
	},
}

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Inspect audit logs",
}

var logsPage int

var logsLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "List login log entries, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := apiServiceBase().R().
			SetQueryParam("page", fmt.Sprint(logsPage)).
			SetResult(&[]database.LoginLog{}).
			Get("/admin/logs/logins")

		if err != nil {
			fmt.Println("Error:", err)
			return
		}

		entries := resp.Result().(*[]database.LoginLog)

		for _, entry := range *entries {
			fmt.Printf("%s\t%s\t%s\t%s\t%s\n",
				entry.CreatedAt.Format("2006-01-02 15:04:05"),
				entry.Username, entry.Result, entry.IPAddress, entry.Location)
		}
	},
}

var logsActivityCmd = &cobra.Command{
	Use:   "activity",
	Short: "List activity log entries, newest first",
	Run: func(cmd *cobra.Command, args []string) {
		resp, err := apiServiceBase().R().
			SetQueryParam("page", fmt.Sprint(logsPage)).
			SetResult(&[]database.ActivityLog{}).
			Get("/admin/logs/activities")

		if err != nil {
			fmt.Println("Error:", err)
			return
		}

		entries := resp.Result().(*[]database.ActivityLog)

		for _, entry := range *entries {
			fmt.Printf("%s\t%s\t%s\t%s\n",
				entry.CreatedAt.Format("2006-01-02 15:04:05"),
				entry.Username, entry.Action, entry.Details)
		}
	},
}

func main() {
	bootstrapCmd.Flags().StringVar(&bootstrapUsername, "username", "admin", "admin username")
	bootstrapCmd.Flags().StringVar(&bootstrapEmail, "email", "", "admin email")
	bootstrapCmd.Flags().StringVar(&bootstrapPassword, "password", "", "admin password (generated when omitted)")
	bootstrapCmd.MarkFlagRequired("email")

	logsCmd.PersistentFlags().IntVar(&logsPage, "page", 1, "page number")

	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userResetPasswordCmd)
	userCmd.AddCommand(userListCmd)
	logsCmd.AddCommand(logsLoginCmd)
	logsCmd.AddCommand(logsActivityCmd)
	rootCmd.AddCommand(bootstrapCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(logsCmd)

	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api", "http://localhost:3000/api", "API base URL")
	rootCmd.PersistentFlags().StringVarP(&sessionToken, "token", "t", "", "session token")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
