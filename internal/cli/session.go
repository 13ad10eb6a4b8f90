// Package cli is the interactive shell of the assistant: it reads user
// lines, handles the reserved Czech control commands and feeds
// everything else to the agent.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rohbot/rohbot/internal/agent"
)

// GoodbyeMessage is printed whenever the session ends, including on
// interrupt.
const GoodbyeMessage = "\n👋 Naschledanou! Váš nákupní seznam byl vyčištěn. Díky že jste využili RohBota!"

// TurnRunner is the slice of the agent the shell needs. Satisfied by
// *agent.Agent and by test doubles.
type TurnRunner interface {
	Send(ctx context.Context, sessionID string, prompt string) (string, error)
	ClearSession(ctx context.Context, sessionID string)
}

// ShoppingClient clears the remote shopping list on exit and reset.
type ShoppingClient interface {
	ClearShoppingList(ctx context.Context) (string, error)
}

// Session owns one interactive conversation. All state is explicit
// fields, so concurrent sessions (e.g. under test) never interfere.
type Session struct {
	Agent     TurnRunner
	Shopping  ShoppingClient
	In        io.Reader
	Out       io.Writer
	SessionID string
}

// Run processes lines until the user exits, input ends or ctx is
// canceled. The caller is expected to print the goodbye message and
// clear the shopping list when Run returns because of cancellation.
func (s *Session) Run(ctx context.Context) error {
	s.printWelcome()

	scanner := bufio.NewScanner(s.In)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(s.Out, "You: ")
		if !scanner.Scan() {
			// EOF behaves like KONEC.
			s.finish(ctx)
			return scanner.Err()
		}

		input := strings.TrimSpace(scanner.Text())
		switch strings.ToUpper(input) {
		case "":
			continue
		case "KONEC", "STAČILO":
			s.finish(ctx)
			return nil
		case "POMOC":
			s.printHelp()
		case "RESET":
			s.Agent.ClearSession(ctx, s.SessionID)
			s.CleanShoppingList(ctx)
			fmt.Fprintln(s.Out, "🔄 Konverzace byla resetována a nákupní seznam vyčištěn.")
			fmt.Fprintln(s.Out)
		default:
			s.processTurn(ctx, input)
		}
	}
}

func (s *Session) processTurn(ctx context.Context, input string) {
	answer, err := s.Agent.Send(ctx, s.SessionID, input)
	switch {
	case errors.Is(err, agent.ErrLoopLimit):
		fmt.Fprintln(s.Out, "❌ Agent překročil maximální počet kroků a dotaz byl přerušen. Zkuste dotaz zjednodušit.")
		fmt.Fprintln(s.Out)
	case err != nil:
		fmt.Fprintf(s.Out, "❌ Chyba při zpracování dotazu: %v\n\n", err)
	default:
		fmt.Fprintf(s.Out, "\n🤖 RohBot: %s\n\n", answer)
	}
}

func (s *Session) finish(ctx context.Context) {
	fmt.Fprintln(s.Out, GoodbyeMessage)
	s.CleanShoppingList(ctx)
}

// CleanShoppingList clears the remote list best effort; it still works
// when ctx was already canceled by an interrupt.
func (s *Session) CleanShoppingList(ctx context.Context) {
	if s.Shopping == nil {
		return
	}

	if _, err := s.Shopping.ClearShoppingList(context.WithoutCancel(ctx)); err != nil {
		fmt.Fprintf(s.Out, "⚠️ Chyba při čištění nákupního seznamu: %v\n", err)
		return
	}
	fmt.Fprintln(s.Out, "🧹 Nákupní seznam byl vyčištěn.")
}

func (s *Session) printWelcome() {
	fmt.Fprintln(s.Out, "🤖 Rohlík Asistent pro plánování jídelníčku a správu nákupního seznamu (RohBot)")
	fmt.Fprintln(s.Out, "====================================================")
	fmt.Fprintln(s.Out, "💬 Pomůžu ti naplánovat tvůj jídelníček podle exkluzivních rohlíkovských receptů!")
	fmt.Fprintln(s.Out, "Můžeš mi poroučet například takto:")
	fmt.Fprintln(s.Out, "   • 'připrav mi týdenní plán vegetariánských jídel'")
	fmt.Fprintln(s.Out, "   • 'vytvoř mi dokument s jídelníčkem na 2 dny pro vegana'")
	fmt.Fprintln(s.Out, "   • 'přidej mrkev na nákupní seznam'")
	fmt.Fprintln(s.Out, "   • 'najdi mi recepty na vegetariánské polévky'")
	fmt.Fprintln(s.Out, "   • 'co je na mém nákupním seznamu?'")
	fmt.Fprintln(s.Out, "   • 'odstraň vše z nákupního seznamu'")
	fmt.Fprintln(s.Out, "   • 'odstraň okurku z nákupního seznamu'")
	fmt.Fprintln(s.Out, "📝 Napiš 'KONEC' nebo 'STAČILO' k ukončení programu,")
	fmt.Fprintln(s.Out, "nebo 'POMOC' pro nápovědu, nebo 'RESET' pro restart konverzace.")
	fmt.Fprintln(s.Out)
}

func (s *Session) printHelp() {
	divider := strings.Repeat("=", 50)
	fmt.Fprintln(s.Out, "\n🆘 NÁPOVĚDA:")
	fmt.Fprintln(s.Out, divider)
	fmt.Fprintln(s.Out, "📋 Dostupné příkazy:")
	fmt.Fprintln(s.Out, "   • POMOC - zobrazí tuto nápovědu")
	fmt.Fprintln(s.Out, "   • RESET - vymaže historii konverzace a nákupní seznam")
	fmt.Fprintln(s.Out, "   • KONEC nebo STAČILO - ukončí program")
	fmt.Fprintln(s.Out, "\n🍽️ Příklady dotazů:")
	fmt.Fprintln(s.Out, "   • 'najdi mi vegetariánské recepty'")
	fmt.Fprintln(s.Out, "   • 'vytvoř jídelníček na 3 dny'")
	fmt.Fprintln(s.Out, "   • 'přidej brambory na nákupní seznam'")
	fmt.Fprintln(s.Out, "   • 'co mám na seznamu?'")
	fmt.Fprintln(s.Out, "   • 'odstraň mléko ze seznamu'")
	fmt.Fprintln(s.Out, divider)
	fmt.Fprintln(s.Out)
}
