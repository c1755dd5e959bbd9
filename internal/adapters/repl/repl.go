package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"invoice-generator/internal/app"
	"invoice-generator/internal/core"

	"github.com/shopspring/decimal"
)

// Run starts the interactive invoice form. It reads commands from reader, keeps one
// draft for the whole session and writes all output to out. It returns when the user
// exits or the input ends; the draft is discarded with the session.
func Run(ctx context.Context, svc app.ApplicationService, reader *bufio.Reader, out io.Writer) {
	business := svc.Business()
	draft := svc.NewDraft()

	fmt.Fprintf(out, "%s - Invoice Generator\n", business.Name)
	fmt.Fprintln(out, "Add items with /add, set the header with /header, then /generate. Type /help for commands.")
	fmt.Fprintln(out, strings.Repeat("-", 70))

	errExit := errors.New("exit")

	dispatch := func(input string) error {
		tokens := strings.Fields(strings.TrimPrefix(input, "/"))
		if len(tokens) == 0 {
			return nil
		}
		cmd := strings.ToLower(tokens[0])
		args := tokens[1:]

		switch cmd {
		case "header":
			res, ok := handleHeader(ctx, reader, out, svc, draft)
			if !ok {
				return errExit
			}
			if res != nil {
				printHeader(out, res.Header)
			}

		case "add", "a":
			if len(args) == 0 {
				res, ok := handleAddItem(ctx, reader, out, svc, draft, business.CurrencyLabel)
				if !ok {
					return errExit
				}
				if res != nil {
					fmt.Fprintf(out, "Added. %d item(s), total %s %s\n", len(res.Items), business.CurrencyLabel, core.FormatINR(res.Total))
				}
				return nil
			}
			// /add <price> <qty> <particulars...>
			if len(args) < 3 {
				fmt.Fprintln(out, "Usage: /add <price> <qty> <particulars>   (or /add alone for the form)")
				return nil
			}
			price, err := decimal.NewFromString(args[0])
			if err != nil {
				fmt.Fprintf(out, "Invalid price: %s\n", args[0])
				return nil
			}
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				fmt.Fprintf(out, "Invalid quantity: %s\n", args[1])
				return nil
			}
			res, err := svc.AddItem(ctx, draft, app.AddItemRequest{
				Description: strings.Join(args[2:], " "),
				UnitPrice:   price,
				Quantity:    qty,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Added. %d item(s), total %s %s\n", len(res.Items), business.CurrencyLabel, core.FormatINR(res.Total))

		case "items", "ls":
			printItems(out, draft.Items(), draft.Total(), business.CurrencyLabel)

		case "remove", "rm", "del":
			if len(args) < 1 {
				fmt.Fprintln(out, "Usage: /remove <item-number>")
				return nil
			}
			n, err := strconv.Atoi(args[0])
			if err != nil {
				fmt.Fprintf(out, "Invalid item number: %s\n", args[0])
				return nil
			}
			res, err := svc.RemoveItem(ctx, draft, n-1)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Removed item %d. %d item(s) left.\n", n, len(res.Items))
			printItems(out, res.Items, res.Total, business.CurrencyLabel)

		case "total":
			fmt.Fprintf(out, "Total: %s %s (%d items)\n", business.CurrencyLabel, core.FormatINR(draft.Total()), draft.Len())

		case "generate", "gen", "g":
			res, err := svc.GenerateInvoice(ctx, draft)
			if errors.Is(err, core.ErrEmptyInvoice) {
				fmt.Fprintln(out, "Add at least one item.")
				return nil
			}
			if err != nil {
				return err
			}
			path := core.SafeFileName(res.FileName)
			if len(args) > 0 {
				path = args[0]
			}
			if err := os.WriteFile(path, res.PDF, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintf(out, "Invoice ready: %s (%d bytes, total %s %s)\n",
				path, len(res.PDF), business.CurrencyLabel, core.FormatINR(res.Total))

		case "preview":
			res, err := svc.PreviewInvoice(ctx, draft)
			if errors.Is(err, core.ErrEmptyInvoice) {
				fmt.Fprintln(out, "Add at least one item.")
				return nil
			}
			if err != nil {
				return err
			}
			path := core.SafeFileName(strings.TrimSuffix(draft.Header().FileName(), ".pdf") + ".html")
			if len(args) > 0 {
				path = args[0]
			}
			if err := os.WriteFile(path, []byte(res.HTML), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintf(out, "Preview written: %s\n", path)

		case "clear":
			draft.Reset()
			fmt.Fprintln(out, "All items removed.")

		case "help", "h":
			printHelp(out)

		case "exit", "quit", "e", "q":
			return errExit

		default:
			fmt.Fprintf(out, "Unknown command: /%s  (type /help for all commands)\n", cmd)
		}
		return nil
	}

	for {
		fmt.Fprint(out, "\n> ")
		input, err := reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if input == "" {
			if err != nil {
				return
			}
			continue
		}

		if !strings.HasPrefix(input, "/") {
			fmt.Fprintln(out, "Commands start with /. Type /help to see them.")
			continue
		}

		if dispErr := dispatch(input); dispErr != nil {
			if dispErr == errExit {
				fmt.Fprintln(out, "Goodbye!")
				return
			}
			fmt.Fprintf(out, "Error: %v\n", dispErr)
		}
		if err != nil {
			return
		}
	}
}
