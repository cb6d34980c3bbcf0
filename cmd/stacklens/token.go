package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stacklens/internal/auth"
	"stacklens/internal/storage"
)

var tokenShowRevoked bool

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage API tokens for the HTTP server",
}

var tokenCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Issue a new API token",
	Long: `Issue a new API token for 'stacklens serve --auth'. The raw token is
printed exactly once; only its hash is stored.`,
	Args: cobra.ExactArgs(1),
	Run:  runTokenCreate,
}

var tokenListCmd = &cobra.Command{
	Use:   "list",
	Short: "List issued API tokens",
	Run:   runTokenList,
}

var tokenRevokeCmd = &cobra.Command{
	Use:   "revoke <key-id>",
	Short: "Revoke an API token",
	Args:  cobra.ExactArgs(1),
	Run:   runTokenRevoke,
}

func init() {
	tokenListCmd.Flags().BoolVar(&tokenShowRevoked, "all", false, "Include revoked tokens")
	tokenCmd.AddCommand(tokenCreateCmd)
	tokenCmd.AddCommand(tokenListCmd)
	tokenCmd.AddCommand(tokenRevokeCmd)
	rootCmd.AddCommand(tokenCmd)
}

func openKeyStore() (*storage.Store, *auth.KeyStore) {
	repoRoot := mustGetRepoRoot()
	logger := newLogger("human")

	store, err := storage.Open(repoRoot, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}

	keys := auth.NewKeyStore(store.DB(), logger)
	if err := keys.InitSchema(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing key store: %v\n", err)
		os.Exit(1)
	}
	return store, keys
}

func runTokenCreate(cmd *cobra.Command, args []string) {
	store, keys := openKeyStore()
	defer func() { _ = store.Close() }()

	key, token, err := keys.Issue(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error issuing token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Key ID: %s\n", key.ID)
	fmt.Printf("Token:  %s\n", token)
	fmt.Println("Store this token now; it will not be shown again.")
}

func runTokenList(cmd *cobra.Command, args []string) {
	store, keys := openKeyStore()
	defer func() { _ = store.Close() }()

	list, err := keys.List(tokenShowRevoked)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing tokens: %v\n", err)
		os.Exit(1)
	}

	if len(list) == 0 {
		fmt.Println("No tokens issued.")
		return
	}
	for _, key := range list {
		status := "active"
		if key.Revoked {
			status = "revoked"
		}
		fmt.Printf("%s  %-10s %-8s created %s\n",
			key.ID, key.Name, status, key.CreatedAt.Format("2006-01-02"))
	}
}

func runTokenRevoke(cmd *cobra.Command, args []string) {
	store, keys := openKeyStore()
	defer func() { _ = store.Close() }()

	if err := keys.Revoke(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Revoked %s\n", args[0])
}
