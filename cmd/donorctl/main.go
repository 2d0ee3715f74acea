package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/doevida/doevida-backend/internal/donor"
	"github.com/doevida/doevida-backend/pkg/config"
	"github.com/doevida/doevida-backend/pkg/logger"
)

// terminalNotifier prints banners the way the web client would toast them.
type terminalNotifier struct {
	out io.Writer
}

func (n terminalNotifier) Success(message string) {
	fmt.Fprintf(n.out, "✔ %s\n", message)
}

func (n terminalNotifier) Error(message string) {
	fmt.Fprintf(n.out, "✖ %s\n", message)
}

func (n terminalNotifier) RedirectToLogin() {
	fmt.Fprintln(n.out, "Sessão expirada. Faça login novamente e exporte DOEVIDA_DONOR_TOKEN.")
}

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "donorctl", Output: os.Stderr})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "donorctl",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Output:      os.Stderr,
	})

	token := os.Getenv("DOEVIDA_DONOR_TOKEN")
	client := donor.NewClient(cfg.Donor, func() string { return token }, logg)
	state := donor.NewState(client)
	notifier := terminalNotifier{out: os.Stdout}

	submitter, err := donor.NewSubmitter(donor.SubmitterParams{
		API:          client,
		State:        state,
		Notifier:     notifier,
		ProbeSession: cfg.Donor.ProbeSession,
		Logger:       logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to build submitter", err)
		os.Exit(1)
	}
	dialog := donor.NewDialogController(state, submitter, cfg.Donor.StrictStates)

	if err := state.Load(ctx); err != nil {
		notifier.Error("Não foi possível carregar as campanhas. Verifique a conexão e tente novamente.")
		logg.Error(ctx, "initial load failed", err)
	}
	printRows(os.Stdout, state)

	runLoop(ctx, os.Stdin, os.Stdout, state, dialog, notifier)
}

func runLoop(ctx context.Context, in io.Reader, out io.Writer, state *donor.State, dialog *donor.DialogController, notifier terminalNotifier) {
	scanner := bufio.NewScanner(in)
	printHelp(out)

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "listar", "list":
			printRows(out, state)

		case "atualizar", "refresh":
			if err := state.Load(ctx); err != nil {
				notifier.Error("Não foi possível carregar as campanhas. Verifique a conexão e tente novamente.")
				continue
			}
			printRows(out, state)

		case "participar", "join":
			if len(fields) < 2 {
				fmt.Fprintln(out, "uso: participar <id>")
				continue
			}
			handleJoin(ctx, out, scanner, state, dialog, fields[1])

		case "ajuda", "help":
			printHelp(out)

		case "sair", "quit", "exit":
			return

		default:
			fmt.Fprintf(out, "comando desconhecido: %s\n", fields[0])
		}
	}
}

func handleJoin(ctx context.Context, out io.Writer, scanner *bufio.Scanner, state *donor.State, dialog *donor.DialogController, rawID string) {
	id := donor.CanonicalID(rawID)

	var selected *donor.Campaign
	for _, c := range state.Campaigns() {
		if c.ID == id {
			campaign := c
			selected = &campaign
			break
		}
	}
	if selected == nil {
		fmt.Fprintf(out, "campanha %s não encontrada\n", id)
		return
	}

	if err := dialog.Open(*selected, nil); err != nil {
		fmt.Fprintln(out, "esta campanha não está disponível para participação")
		return
	}

	fmt.Fprintf(out, "Confirmar participação em %q? [s/N] ", selected.Title)
	if !scanner.Scan() {
		dialog.Cancel()
		return
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	if answer != "s" && answer != "sim" {
		dialog.Cancel()
		fmt.Fprintln(out, "participação cancelada")
		return
	}

	if _, err := dialog.Confirm(ctx); err != nil {
		fmt.Fprintln(out, "não foi possível confirmar a seleção")
		return
	}
	printRows(out, state)
}

func printRows(out io.Writer, state *donor.State) {
	rows := donor.Rows(state)
	for _, row := range rows {
		if row.Placeholder {
			fmt.Fprintln(out, row.Name)
			return
		}
		marker := " "
		if row.RowHighlighted {
			marker = "*"
		}
		fmt.Fprintf(out, "%s [%s] %-30s %-4s %-20s %s\n",
			marker, row.CampaignID, row.Name, row.BloodType, row.Location, row.ButtonLabel)
	}
}

func printHelp(out io.Writer) {
	fmt.Fprintln(out, "comandos: listar | participar <id> | atualizar | ajuda | sair")
}
