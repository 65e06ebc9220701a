package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"openshelf/internal/adapters/tracker"
	"openshelf/internal/config"
	"openshelf/internal/core/domain/models"
	"openshelf/internal/core/domain/ports"
	"openshelf/internal/core/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "openshelf",
		Short:         "Client for Open Library-style catalog services",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(
		newISBNCmd(),
		newOLIDCmd(),
		newGetCmd(),
		newSearchCmd(),
		newAuthorCmd(),
		newAddCmd(),
		newImportCmd(),
	)
	return root
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Minute)
}

// login authenticates when credentials are configured. Commands that only
// read public data never need it.
func login(ctx context.Context, cfg *config.Config, cat ports.Catalog) error {
	if cfg.Username == "" {
		return nil
	}
	return cat.Login(ctx, models.Credentials{
		Username: cfg.Username,
		Password: cfg.Password,
	})
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func newISBNCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "isbn <isbn>",
		Short: "Fetch a book by ISBN",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()

			cat := service.CreateSourceCatalog(config.GetConfig())
			book, err := cat.GetBookByISBN(ctx, args[0])
			if err != nil {
				return err
			}
			if book == nil {
				return fmt.Errorf("no book found for ISBN %s", args[0])
			}
			return printJSON(book)
		},
	}
}

func newOLIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "olid <isbn>",
		Short: "Resolve an ISBN to its edition olid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()

			cat := service.CreateSourceCatalog(config.GetConfig())
			olid, err := cat.ResolveOLIDByISBN(ctx, args[0])
			if err != nil {
				return err
			}
			if olid == "" {
				return fmt.Errorf("no match for ISBN %s", args[0])
			}
			fmt.Println(olid)
			return nil
		},
	}
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <olid>",
		Short: "Fetch a book by its olid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()

			cat := service.CreateSourceCatalog(config.GetConfig())
			book, err := cat.GetBookByOLID(ctx, args[0])
			if err != nil {
				return err
			}
			if book == nil {
				return fmt.Errorf("no book found for olid %s", args[0])
			}
			return printJSON(book)
		},
	}
}

func newSearchCmd() *cobra.Command {
	var author string
	cmd := &cobra.Command{
		Use:   "search <title>",
		Short: "Find the closest matching book by title (and author)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()

			cat := service.CreateSourceCatalog(config.GetConfig())
			book, err := cat.GetBookByMetadata(ctx, args[0], author)
			if err != nil {
				return err
			}
			if book == nil {
				return fmt.Errorf("no results for %q", args[0])
			}
			return printJSON(book)
		},
	}
	cmd.Flags().StringVar(&author, "author", "", "restrict the search to an author name")
	return cmd
}

func newAuthorCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "author <name>",
		Short: "List auto-complete candidates for an author name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()

			cat := service.CreateSourceCatalog(config.GetConfig())
			matches, err := cat.FindMatchingAuthors(ctx, args[0], limit)
			if err != nil {
				return err
			}
			return printJSON(matches)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of candidates")
	return cmd
}

type addFlags struct {
	title       string
	subtitle    string
	author      string
	publisher   string
	publishDate string
	isbn10      string
	isbn13      string
	lccn        string
	dryRun      bool
}

// bookFromFlags builds the Book an `add` invocation describes.
func bookFromFlags(f addFlags) models.Book {
	book := models.NewBook(f.title)
	book.Subtitle = f.subtitle
	book.PublishDate = f.publishDate
	if f.publisher != "" {
		book.Publishers = []string{f.publisher}
	}
	if f.author != "" {
		book.Authors = []models.Author{{Name: f.author}}
	}
	if f.isbn10 != "" {
		book.AddIdentifier(models.IDISBN10, f.isbn10)
	}
	if f.isbn13 != "" {
		book.AddIdentifier(models.IDISBN13, f.isbn13)
	}
	if f.lccn != "" {
		book.AddIdentifier(models.IDLCCN, f.lccn)
	}
	return *book
}

func newAddCmd() *cobra.Command {
	var flags addFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new book in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()

			cfg := config.GetConfig()
			cat := service.CreateCatalog(cfg)

			book := bookFromFlags(flags)
			if flags.dryRun {
				form, err := cat.PreviewCreateBook(ctx, book)
				if err != nil {
					return err
				}
				return printJSON(form)
			}

			if err := login(ctx, cfg, cat); err != nil {
				return err
			}
			olid, err := cat.CreateBook(ctx, book)
			if err != nil {
				return err
			}
			if olid == "" {
				return fmt.Errorf("creation response did not contain a new olid")
			}
			fmt.Println(olid)
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.title, "title", "", "book title (required)")
	cmd.Flags().StringVar(&flags.subtitle, "subtitle", "", "book subtitle")
	cmd.Flags().StringVar(&flags.author, "author", "", "primary author name")
	cmd.Flags().StringVar(&flags.publisher, "publisher", "", "publisher name")
	cmd.Flags().StringVar(&flags.publishDate, "publish-date", "", "publish date")
	cmd.Flags().StringVar(&flags.isbn10, "isbn10", "", "ISBN-10 identifier")
	cmd.Flags().StringVar(&flags.isbn13, "isbn13", "", "ISBN-13 identifier")
	cmd.Flags().StringVar(&flags.lccn, "lccn", "", "LCCN identifier")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "print the creation payload instead of posting it")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

// readISBNList reads one ISBN per line, skipping blanks and # comments.
func readISBNList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var isbns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		isbns = append(isbns, line)
	}
	return isbns, scanner.Err()
}

func newImportCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import editions into the catalog from a list of ISBNs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()

			cfg := config.GetConfig()
			isbns, err := readISBNList(file)
			if err != nil {
				return err
			}

			state, err := tracker.NewFileStateStore(cfg.ImportStatePath)
			if err != nil {
				return err
			}

			dest := service.CreateCatalog(cfg)
			if err := login(ctx, cfg, dest); err != nil {
				return err
			}

			svc := service.NewImportService(cfg, service.CreateSourceCatalog(cfg), dest, state)
			report, err := svc.Run(ctx, isbns)
			if err != nil {
				return err
			}
			return printJSON(report)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "path to a file with one ISBN per line (required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
