package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"kennel-records/internal/domain/litters"
	"kennel-records/internal/platform/dates"
)

func newScheduleCmd() *cobra.Command {
	var birth, dam, stud string

	cmd := &cobra.Command{
		Use:     "schedule",
		Short:   "Imprime el calendario post-parto para una fecha de nacimiento",
		Example: "  api schedule --birth 2025-06-01 --dam Luna --stud Rex",
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := dates.Parse(birth)
			if err != nil {
				return fmt.Errorf("--birth: %w", err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "DATE\tTYPE\tTITLE\tNOTES")
			for _, e := range litters.ScheduleFor(day, dam, stud) {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", dates.Format(e.Date), e.Type, e.Title, e.Notes)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&birth, "birth", "", "fecha de parto (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dam, "dam", "", "nombre de la madre")
	cmd.Flags().StringVar(&stud, "stud", "", "nombre del macho")
	_ = cmd.MarkFlagRequired("birth")
	return cmd
}
