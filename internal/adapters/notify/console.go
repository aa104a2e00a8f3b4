package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mitegun/snipebot/internal/domain"
	"github.com/olekukonko/tablewriter"
)

// Console implementa ports.Notifier.
type Console struct {
	out   io.Writer
	table bool
}

// NewConsole crea un notificador que escribe a stdout.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter crea un notificador para tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// Notify imprime las posiciones del ciclo en el modo configurado.
func (c *Console) Notify(_ context.Context, positions []domain.Position) error {
	if len(positions) == 0 {
		fmt.Fprintf(c.out, "[%s] no positions this cycle\n", time.Now().Format("15:04:05"))
		return nil
	}

	if c.table {
		c.printTable(positions)
	} else {
		c.printCompact(positions)
	}
	return nil
}

// printCompact imprime lo esencial en una línea.
func (c *Console) printCompact(positions []domain.Position) {
	exited, failed := countByOutcome(positions)
	fmt.Fprintf(c.out, "[%s] %d positions — exited:%d failed:%d\n",
		time.Now().Format("15:04:05"), len(positions), exited, failed)

	for _, p := range positions {
		if p.Status != domain.StatusPartiallyExited {
			continue
		}
		fmt.Fprintf(c.out, "  %s %s entry %.4f → target %.4f (sell %.4f, moonbag %.0f%%)\n",
			truncate(p.Address, 12), p.Chain, p.EntryPrice, p.TargetPrice,
			p.SellSize, p.Intent.MoonbagFraction*100)
	}
}

// printTable imprime la tabla completa de posiciones.
func (c *Console) printTable(positions []domain.Position) {
	exited, failed := countByOutcome(positions)
	fmt.Fprintf(c.out, "\n[%s] %d positions — exited:%d failed:%d\n",
		time.Now().Format("15:04:05"), len(positions), exited, failed)

	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Address", "Chain", "Score", "Entry", "Size", "Target", "Sell", "Status")

	for i, p := range positions {
		status := string(p.Status)
		if p.Status == domain.StatusFailed && p.Reason != "" {
			status = fmt.Sprintf("failed: %s", truncate(p.Reason, 28))
		}

		table.Append(
			fmt.Sprintf("%d", i+1),
			truncate(p.Address, 16),
			string(p.Chain),
			fmt.Sprintf("%.0f", p.Score),
			fmt.Sprintf("%.4f", p.EntryPrice),
			fmt.Sprintf("%.4f", p.Size),
			fmt.Sprintf("%.4f", p.TargetPrice),
			fmt.Sprintf("%.4f", p.SellSize),
			status,
		)
	}

	table.Render()

	fmt.Fprintln(c.out, "  Entry = precio límite del buy | Target = entry × take-profit")
	fmt.Fprintln(c.out, "  Sell = tamaño de la venta parcial (el resto queda como moonbag)")
}

// countByOutcome cuenta posiciones terminales por resultado.
func countByOutcome(positions []domain.Position) (exited, failed int) {
	for _, p := range positions {
		switch p.Status {
		case domain.StatusPartiallyExited:
			exited++
		case domain.StatusFailed:
			failed++
		}
	}
	return exited, failed
}

// truncate corta un string a n caracteres con elipsis.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
