package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/tiemhang/tiemhang/internal/draft"
	"github.com/tiemhang/tiemhang/internal/money"
	"github.com/tiemhang/tiemhang/internal/orders"
	"github.com/tiemhang/tiemhang/internal/reconcile"
)

const editorHelp = `commands:
  show                         render the draft, totals and warnings
  customer <id>                set the customer
  date <yyyy-mm-dd>            set the order date
  status <value>               set delivery status (PENDING, DELIVERED, UNPAID, COMPLETED)
  debt <text>                  set debt status
  cost <amount> [note]         set additional cost (negative = discount)
  add                          add an order line
  rm <line>                    remove a line
  product <line> <id>          pick the product (resets the line)
  boxes <line> <n|->           set or clear the box count
  spec <line> <n|->            set or clear the per-line spec
  qty <line> <n>               enter quantity directly (clears boxes/spec)
  price <line> <n>             set selling price per unit
  discount <line> <n>          set discount percent (0-100)
  source <line> <value>        set supply source (INVENTORY or EXTERNAL)
  refresh                      re-read products/inventories, re-stamp versions
  submit                       validate and submit the order
  discard                      throw the draft away
  quit                         leave (draft is kept)`

// runOrderEditor is the interactive create-order loop. The draft is
// persisted after every mutation and only removed when the order is
// accepted, so a crash or quit never loses entered data.
func (c *console) runOrderEditor(ctx *cli.Context) error {
	store, err := draft.NewStore(c.cfg.StateDir, c.logger)
	if err != nil {
		return err
	}
	d, err := store.Load()
	if err != nil {
		return err
	}
	if d == nil {
		d = draft.New()
	} else {
		fmt.Fprintln(c.out, "resuming saved draft")
	}

	svc := orders.NewService(c.client, c.logger)
	cat, err := orders.LoadCatalog(ctx.Context, c.client)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, `order editor, type "help" for commands`)
	scanner := bufio.NewScanner(c.in)
	for {
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			return store.Save(d)
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "help":
			fmt.Fprintln(c.out, editorHelp)
			continue
		case "quit":
			return store.Save(d)
		case "discard":
			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "draft discarded")
			return nil
		case "show":
			c.renderDraft(d, cat)
			continue
		case "refresh":
			cat, err = orders.LoadCatalog(ctx.Context, c.client)
			if err != nil {
				fmt.Fprintln(c.out, "refresh failed:", err)
				continue
			}
			d.RefreshVersions(cat)
			if err := store.Save(d); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "data refreshed, versions re-stamped")
			continue
		case "submit":
			resp, err := svc.Submit(ctx.Context, d)
			switch orders.Classify(err) {
			case orders.FailureNone:
				if err := store.Clear(); err != nil {
					return err
				}
				fmt.Fprintf(c.out, "order %d created, total %s\n", resp.ID, money.VND(resp.TotalAmount))
				return nil
			case orders.FailureValidation:
				fmt.Fprintln(c.out, "cannot submit:", err)
			case orders.FailureConflict:
				fmt.Fprintln(c.out, "conflict:", err)
				fmt.Fprintln(c.out, `inventory moved under you; run "refresh", review the warnings, then submit again`)
			default:
				fmt.Fprintln(c.out, "submission failed:", err)
			}
			// The draft survives every failure so the user can fix
			// and resubmit without re-entering anything.
			if err := store.Save(d); err != nil {
				return err
			}
			continue
		}

		if err := c.applyEdit(d, cat, cmd, args); err != nil {
			fmt.Fprintln(c.out, err)
			continue
		}
		if err := store.Save(d); err != nil {
			return err
		}
	}
}

func (c *console) applyEdit(d *draft.Order, cat *orders.Catalog, cmd string, args []string) error {
	switch cmd {
	case "customer":
		id, err := parseCount(args, 0)
		if err != nil {
			return err
		}
		d.CustomerID = id
	case "date":
		if len(args) != 1 {
			return fmt.Errorf("usage: date <yyyy-mm-dd>")
		}
		d.OrderDate = args[0]
	case "status":
		if len(args) != 1 {
			return fmt.Errorf("usage: status <value>")
		}
		d.DeliveryStatus = args[0]
	case "debt":
		d.DebtStatus = strings.Join(args, " ")
	case "cost":
		amount, err := parseCount(args, 0)
		if err != nil {
			return err
		}
		d.AdditionalCost = amount
		d.AdditionalCostNote = strings.Join(args[1:], " ")
	case "add":
		i := d.AddItem()
		fmt.Fprintf(c.out, "added line %d\n", i+1)
	case "rm":
		i, err := parseLine(d, args)
		if err != nil {
			return err
		}
		return d.RemoveItem(i)
	case "product":
		i, err := parseLine(d, args)
		if err != nil {
			return err
		}
		id, err := parseCount(args, 1)
		if err != nil {
			return err
		}
		if _, ok := cat.Product(id); !ok {
			return fmt.Errorf("unknown product %d", id)
		}
		return d.SetProduct(i, id, cat)
	case "boxes":
		i, err := parseLine(d, args)
		if err != nil {
			return err
		}
		v, err := parseOptional(args, 1)
		if err != nil {
			return err
		}
		if d.BoxSpecLocked(i) {
			return fmt.Errorf("line %d uses direct quantity entry; set qty to 0 first", i+1)
		}
		return d.SetBoxes(i, v, cat)
	case "spec":
		i, err := parseLine(d, args)
		if err != nil {
			return err
		}
		v, err := parseOptional(args, 1)
		if err != nil {
			return err
		}
		if d.BoxSpecLocked(i) {
			return fmt.Errorf("line %d uses direct quantity entry; set qty to 0 first", i+1)
		}
		return d.SetSpec(i, v)
	case "qty":
		i, err := parseLine(d, args)
		if err != nil {
			return err
		}
		v, err := parseCount(args, 1)
		if err != nil {
			return err
		}
		return d.SetQuantity(i, v)
	case "price":
		i, err := parseLine(d, args)
		if err != nil {
			return err
		}
		v, err := parseCount(args, 1)
		if err != nil {
			return err
		}
		return d.SetSellingPrice(i, v)
	case "discount":
		i, err := parseLine(d, args)
		if err != nil {
			return err
		}
		v, err := parseCount(args, 1)
		if err != nil {
			return err
		}
		return d.SetDiscount(i, v)
	case "source":
		i, err := parseLine(d, args)
		if err != nil {
			return err
		}
		if len(args) < 2 {
			return fmt.Errorf("usage: source <line> <INVENTORY|EXTERNAL>")
		}
		src := reconcile.Source(strings.ToUpper(args[1]))
		if !src.Valid() {
			return fmt.Errorf("source must be INVENTORY or EXTERNAL")
		}
		productID := d.Items[i].ProductID
		for _, taken := range d.TakenSources(productID, i) {
			if taken == src {
				return fmt.Errorf("another line already sources product %d from %s", productID, src)
			}
		}
		return d.SetExportFrom(i, src)
	default:
		return fmt.Errorf("unknown command %q, type \"help\"", cmd)
	}
	return nil
}

func (c *console) renderDraft(d *draft.Order, cat *orders.Catalog) {
	customer := "(none)"
	if d.CustomerID != 0 {
		customer = fmt.Sprintf("%d", d.CustomerID)
	}
	fmt.Fprintf(c.out, "customer %s  date %s  delivery %s  debt %q\n", customer, d.OrderDate, d.DeliveryStatus, d.DebtStatus)

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LINE\tPRODUCT\tBOXES\tSPEC\tQTY\tPRICE\tDISC\tAMOUNT\tSOURCE")
	for i, l := range d.Items {
		name := "-"
		if p, ok := cat.Product(l.ProductID); ok {
			name = p.Name
		}
		src := "-"
		if l.ExportFrom != "" {
			src = string(l.ExportFrom)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\t%d%%\t%s\t%s\n",
			i+1, name, optStr(l.NumberOfBoxes), optStr(l.Spec), l.Quantity,
			money.VND(float64(l.SellingPrice)), l.Discount, money.VND(l.FinalAmount), src)
	}
	tw.Flush()

	t := d.Totals(cat)
	if d.AdditionalCost != 0 {
		fmt.Fprintf(c.out, "additional cost: %s (%s)\n", money.VND(float64(d.AdditionalCost)), d.AdditionalCostNote)
	}
	fmt.Fprintf(c.out, "total: %s  after cost: %s  profit/loss: %s (%s)\n",
		money.VND(t.OrderTotal), money.VND(t.TotalAfterCost), money.VND(t.TotalProfitLoss), money.Percent(t.TotalProfitLossPercent))

	for _, w := range d.Warnings(cat) {
		name := fmt.Sprintf("product %d", w.ProductID)
		if p, ok := cat.Product(w.ProductID); ok {
			name = p.Name
		}
		fmt.Fprintf(c.out, "warning: %s: %s\n", name, w.Message())
	}
}

func optStr(v *int64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatInt(*v, 10)
}

func parseLine(d *draft.Order, args []string) (int, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("missing line number")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(d.Items) {
		return 0, fmt.Errorf("no such line %q", args[0])
	}
	return n - 1, nil
}

func parseCount(args []string, pos int) (int64, error) {
	if len(args) <= pos {
		return 0, fmt.Errorf("missing number")
	}
	v, err := strconv.ParseInt(args[pos], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", args[pos])
	}
	return v, nil
}

// parseOptional reads an optional count; "-" clears the field.
func parseOptional(args []string, pos int) (*int64, error) {
	if len(args) <= pos {
		return nil, fmt.Errorf("missing value (a number, or - to clear)")
	}
	if args[pos] == "-" {
		return nil, nil
	}
	v, err := strconv.ParseInt(args[pos], 10, 64)
	if err != nil || v < 0 {
		return nil, fmt.Errorf("not a valid count: %q", args[pos])
	}
	return &v, nil
}
