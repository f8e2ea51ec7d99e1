package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/Tocea2003/Practica-BookSystem/internal/config"
	"github.com/Tocea2003/Practica-BookSystem/internal/database"
	"github.com/Tocea2003/Practica-BookSystem/internal/library"
	"github.com/Tocea2003/Practica-BookSystem/internal/reports"
)

// OverdueCommand prints open reservations past their due date with the fine
// a return would charge. It never writes to the database.
type OverdueCommand struct {
	Database databaseFlags
	Date     string
	Rate     float64
	JSON     bool
	Out      io.Writer

	asOf time.Time
}

func NewOverdueCommand() *OverdueCommand {
	return &OverdueCommand{Out: os.Stdout}
}

func (cmd *OverdueCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("overdue", flag.ContinueOnError)
	cmd.Database.register(fs)
	fs.StringVar(&cmd.Date, "date", "", "Report as of this date (yyyy-MM-dd); defaults to now")
	fs.Float64Var(&cmd.Rate, "rate", config.DefaultDailyFineRate, "Fine charged per full day late")
	fs.BoolVar(&cmd.JSON, "json", false, "Print JSON instead of a table")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s overdue [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List reservations that are past due and the fine each would incur.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s overdue\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s overdue -date 2024-07-20 -json\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Rate < 0 {
		return fmt.Errorf("rate must not be negative")
	}
	cmd.asOf = time.Now().UTC()
	if cmd.Date != "" {
		t, err := library.ParseDate(cmd.Date)
		if err != nil {
			return err
		}
		cmd.asOf = t
	}
	return nil
}

func (cmd *OverdueCommand) Run() error {
	db, err := database.NewDatabase(cmd.Database.config(false))
	if err != nil {
		return err
	}
	defer db.Close()

	reporter, err := reports.NewReporter(db, cmd.Rate)
	if err != nil {
		return err
	}
	overdue, err := reporter.Overdue(context.Background(), cmd.asOf)
	if err != nil {
		return err
	}

	if cmd.JSON {
		enc := json.NewEncoder(cmd.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(overdue)
	}

	if len(overdue) == 0 {
		fmt.Fprintf(cmd.Out, "No overdue reservations as of %s\n", library.FormatDate(cmd.asOf))
		return nil
	}

	w := tabwriter.NewWriter(cmd.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tBOOK\tUSER\tDUE\tDAYS\tFINE")
	var total float64
	for _, o := range overdue {
		fmt.Fprintf(w, "%d\t%s\t%s %s\t%s\t%d\t%.2f\n",
			o.ID, o.BookTitle, o.FirstName, o.LastName, library.FormatDate(o.DueDate), o.DaysOverdue, o.AccruedFine)
		total += o.AccruedFine
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.Out, "\n%d overdue, %.2f in fines as of %s\n", len(overdue), total, library.FormatDate(cmd.asOf))
	return nil
}
