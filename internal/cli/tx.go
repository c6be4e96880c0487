package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sadopc/corkboard/internal/finance"
)

func addTx(topLevel *cobra.Command, o *rootOptions) {
	cmd := &cobra.Command{
		Use:     "tx",
		Aliases: []string{"transactions", "finance"},
		Short:   "Track income and expenses",
	}

	addTxList(cmd, o)
	addTxAdd(cmd, o)
	addTxRemove(cmd, o)
	addTxSummary(cmd, o)

	topLevel.AddCommand(cmd)
}

func signedAmount(t finance.Transaction) string {
	s := t.Type.Sign() + money(t.Amount)
	if t.Type == finance.Credit {
		return green(s)
	}
	return red(s)
}

func addTxList(parent *cobra.Command, o *rootOptions) {
	parent.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List transactions",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.open(cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()

			w := cmd.OutOrStdout()
			list := s.ws.Finance.List()
			if len(list) == 0 {
				printNone(w)
				return nil
			}
			tbl := newTable("ID", "DATE", "TITLE", "CATEGORY", "AMOUNT")
			for _, t := range list {
				tbl.AddRow(yellowI(t.ID), t.Date, t.Title, t.Category.Label(), signedAmount(t))
			}
			printTable(w, tbl)
			return nil
		},
	})
}

type txOptions struct {
	date, kind, category string
}

func addTxAdd(parent *cobra.Command, o *rootOptions) {
	to := &txOptions{}
	cmd := &cobra.Command{
		Use:   "add AMOUNT TITLE...",
		Short: "Record a transaction",
		Example: `
corkboard tx add 12.50 Lunch
corkboard tx add 1200 Salary --type credit --category personal
`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := finance.ParseAmount(args[0]); err != nil {
				return fmt.Errorf("invalid amount %q", args[0])
			}
			if to.kind != "" && !finance.Kind(to.kind).Valid() {
				return fmt.Errorf("unknown type %q (want debit or credit)", to.kind)
			}
			if to.category != "" && !finance.Category(to.category).Valid() {
				return fmt.Errorf("unknown category %q", to.category)
			}

			s, err := o.open(cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()

			t, ok := s.ws.Finance.Add(finance.Draft{
				Title:    strings.Join(args[1:], " "),
				Amount:   args[0],
				Date:     to.date,
				Type:     finance.Kind(to.kind),
				Category: finance.Category(to.category),
			})
			if !ok {
				return fmt.Errorf("transaction rejected")
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added transaction %d %s\n", t.ID, signedAmount(t))
			return nil
		},
	}
	cmd.Flags().StringVar(&to.date, "date", "", "Day of the transaction, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&to.kind, "type", "", "debit or credit (default debit)")
	cmd.Flags().StringVar(&to.category, "category", "", "food, entertainment, personal, debt or essentials (default food)")
	parent.AddCommand(cmd)
}

func addTxRemove(parent *cobra.Command, o *rootOptions) {
	parent.AddCommand(&cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a transaction",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			s, err := o.open(cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()

			if !s.ws.Finance.Remove(id) {
				return fmt.Errorf("transaction %d not found", id)
			}
			return nil
		},
	})
}

func addTxSummary(parent *cobra.Command, o *rootOptions) {
	parent.AddCommand(&cobra.Command{
		Use:   "summary [YYYY-MM]",
		Short: "Monthly expenses and income",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := time.Now()
			if len(args) == 1 {
				var err error
				if ref, err = time.Parse("2006-01", args[0]); err != nil {
					return fmt.Errorf("invalid month %q, want YYYY-MM", args[0])
				}
			}
			s, err := o.open(cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()

			sum := s.ws.Finance.Monthly(ref)
			w := cmd.OutOrStdout()
			printTitle(w, sum.From.Format("January 2006"))

			tbl := newTable()
			tbl.AddRow(bold("Expenses"), red(money(sum.Expense)))
			tbl.AddRow(bold("Income"), green(money(sum.Income)))
			tbl.AddRow(bold("Balance"), money(sum.Balance))
			for _, c := range sum.ByCategory {
				if c.Amount == 0 {
					continue
				}
				tbl.AddRow(faint(c.Category.Label()), money(c.Amount))
			}
			printTable(w, tbl)
			return nil
		},
	})
}
