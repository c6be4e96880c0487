package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sadopc/corkboard/internal/store"
)

func addStatus(topLevel *cobra.Command, o *rootOptions) {
	topLevel.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show where data lives and what is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := o.open(cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()

			w := cmd.OutOrStdout()
			info := newTable()
			info.AddRow(bold("backend"), s.cfg.Backend)
			info.AddRow(bold("data dir"), s.cfg.DataDir)
			info.AddRow(bold("log file"), s.cfg.LogPath())
			info.AddRow(bold("notes"), s.ws.Notes.Len())
			info.AddRow(bold("events"), len(s.ws.Events.List()))
			info.AddRow(bold("transactions"), len(s.ws.Finance.List()))
			printTable(w, info)

			in, ok := s.ws.Backend().(store.Inspector)
			if !ok {
				return nil
			}
			keys, err := in.Keys()
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(w)
			printTitle(w, "Documents")
			if len(keys) == 0 {
				printNone(w)
				return nil
			}
			tbl := newTable("KEY", "SIZE", "UPDATED")
			for _, k := range keys {
				size := "?"
				if data, err := s.ws.Backend().Read(k); err == nil {
					size = strconv.Itoa(len(data))
				}
				updated := faint("unknown")
				if t, err := in.UpdatedAt(k); err == nil {
					updated = t.Local().Format("2006-01-02 15:04")
				}
				tbl.AddRow(k, size, updated)
			}
			printTable(w, tbl)
			return nil
		},
	})
}
