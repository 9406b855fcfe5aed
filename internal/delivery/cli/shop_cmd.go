package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"petclinic-client/internal/domain"
	"petclinic-client/pkg/utils"
)

const shopHelp = `commands:
  products [page] [category]          browse the shop
  add <product-id> [qty] [color] [size]
  qty <#n|item-id> <quantity>         change a line's quantity
  rm <#n|item-id>                     remove a line
  cart                                show the cart
  clear                               empty the cart
  quit`

func newShopCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Browse products and fill a cart interactively",
		Long:  "Starts an interactive shop session. The cart lives for the session only.\n\n" + shopHelp,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShop(cmd.Context(), app, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	var filter domain.ProductFilter
	products := &cobra.Command{
		Use:   "products",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listProducts(cmd.Context(), app, cmd.OutOrStdout(), filter)
		},
	}
	products.Flags().IntVar(&filter.Page, "page", 1, "page")
	products.Flags().IntVar(&filter.Limit, "limit", domain.DefaultLimit, "page size")
	products.Flags().StringVar(&filter.Category, "category", "", "category")
	products.Flags().StringVarP(&filter.Search, "search", "q", "", "search text")

	cmd.AddCommand(products)
	return cmd
}

func listProducts(ctx context.Context, app *App, out io.Writer, filter domain.ProductFilter) error {
	items, meta, err := app.Catalog.ListProducts(ctx, filter)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(items))
	for _, p := range items {
		rows = append(rows, []string{p.ID, utils.Truncate(p.Name, 40), p.Brand, money(p.Price), strconv.Itoa(p.Stock)})
	}
	renderTable(out, []string{"ID", "Name", "Brand", "Price", "Stock"}, rows)
	pageFooter(out, meta)
	return nil
}

func runShop(ctx context.Context, app *App, in io.Reader, out io.Writer) error {
	unsubscribe := app.Cart.Subscribe(func(st domain.CartState) {
		app.Notify.Info("cart: %d item(s), %s", st.TotalItems, money(st.TotalPrice))
	})
	defer unsubscribe()

	fmt.Fprintln(out, shopHelp)
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "shop> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if done := shopLine(ctx, app, out, fields); done {
			return nil
		}
	}
}

// shopLine runs one REPL command and reports whether the session is over.
// Errors become toasts; the session keeps going.
func shopLine(ctx context.Context, app *App, out io.Writer, fields []string) bool {
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	switch cmd {
	case "quit", "exit", "q":
		return true

	case "help", "?":
		fmt.Fprintln(out, shopHelp)

	case "products", "ls":
		filter := domain.ProductFilter{Page: 1}
		if len(args) > 0 {
			filter.Page = utils.ParseInt(args[0], 1)
		}
		if len(args) > 1 {
			filter.Category = args[1]
		}
		if err := listProducts(ctx, app, out, filter); err != nil {
			app.Notify.Error(err)
		}

	case "add":
		if len(args) == 0 {
			app.Notify.Error(errors.New("usage: add <product-id> [qty] [color] [size]"))
			break
		}
		qty := 1
		if len(args) > 1 {
			qty = utils.ParseInt(args[1], 1)
		}
		color, size := argAt(args, 2), argAt(args, 3)
		if _, err := app.Cart.AddProduct(ctx, args[0], color, size, qty); err != nil {
			app.Notify.Error(err)
		}

	case "qty":
		if len(args) != 2 {
			app.Notify.Error(errors.New("usage: qty <#n|item-id> <quantity>"))
			break
		}
		q, err := strconv.Atoi(args[1])
		if err != nil {
			app.Notify.Error(errors.New("quantity must be a number"))
			break
		}
		app.Cart.UpdateQuantity(resolveLine(app.Cart.State(), args[0]), q)

	case "rm", "remove":
		if len(args) != 1 {
			app.Notify.Error(errors.New("usage: rm <#n|item-id>"))
			break
		}
		app.Cart.Remove(resolveLine(app.Cart.State(), args[0]))

	case "cart":
		renderCart(out, app.Cart.State())

	case "clear":
		app.Cart.Clear()

	default:
		app.Notify.Error(fmt.Errorf("unknown command %q, try help", cmd))
	}
	return false
}

// resolveLine maps "#2" to the second line's id; anything else is taken
// as an id. Out-of-range numbers resolve to "" which the cart ignores.
func resolveLine(st domain.CartState, ref string) string {
	if !strings.HasPrefix(ref, "#") {
		return ref
	}
	n, err := strconv.Atoi(ref[1:])
	if err != nil || n < 1 || n > len(st.Items) {
		return ""
	}
	return st.Items[n-1].ID
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
