// Command duel plays a local battle against the engine in the terminal.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/pefman/poke-duel/internal/battle"
	"github.com/pefman/poke-duel/internal/roster"
)

var (
	titleColor  = color.New(color.FgHiYellow, color.Bold)
	playerColor = color.New(color.FgHiGreen)
	enemyColor  = color.New(color.FgHiRed)
	logColor    = color.New(color.FgWhite)
	critColor   = color.New(color.FgHiMagenta, color.Bold)
	hackColor   = color.New(color.FgHiCyan, color.Bold)
	winColor    = color.New(color.FgHiGreen, color.Bold)
	loseColor   = color.New(color.FgHiRed, color.Bold)
)

func main() {
	if err := battle.VerifyTypeChart(); err != nil {
		fmt.Fprintln(os.Stderr, "type chart:", err)
		os.Exit(1)
	}

	teams := roster.SeedTeams()
	titleColor.Println("=== POKE DUEL ===")
	for i, t := range teams {
		fmt.Printf("  [%d] %s\n", i, t.Name)
	}

	in := bufio.NewScanner(os.Stdin)
	playerTeam := teams[promptInt(in, "pick your team", 0, len(teams)-1)]
	enemyTeam := teams[promptInt(in, "pick the enemy team", 0, len(teams)-1)]

	machine := battle.NewMachine(battle.DefaultConfig())
	sess, err := machine.InitBattle("local", playerTeam.BaseRoster(), enemyTeam.BaseRoster(), battle.ClearDaySnapshot(), battle.NewRNG())
	if err != nil {
		fmt.Fprintln(os.Stderr, "init battle:", err)
		os.Exit(1)
	}

	seen := 0
	for sess.Status == battle.SessionActive {
		seen = printNewLog(sess, seen)
		printSides(sess)

		if sess.State == battle.StateHackPending {
			hackColor.Printf("HACK CHALLENGE (%s, %s): decode %q\n", sess.Hack.Difficulty, sess.Hack.Scheme, sess.Hack.Payload)
			fmt.Print("answer> ")
			if !in.Scan() {
				return
			}
			outcome, err := machine.SubmitHackAnswer(sess, in.Text())
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				continue
			}
			hackColor.Printf("-> %s\n", outcome)
			continue
		}

		active := sess.Player.ActivePokemon()
		playerColor.Printf("%s's moves:\n", active.Base.Name)
		for i, m := range active.Moves {
			fmt.Printf("  [%d] %-14s %-9s power %-3d acc %-3d pp %d/%d\n", i, m.Name, m.Type, m.Power, m.Accuracy, m.PP, m.MaxPP)
		}
		idx := promptInt(in, "move", 0, len(active.Moves)-1)
		if err := machine.SubmitMove(sess, idx); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	printNewLog(sess, seen)
	if sess.Winner == battle.SidePlayer {
		winColor.Println("You win!")
	} else {
		loseColor.Println("You lose.")
	}
}

func printSides(s *battle.Session) {
	p, e := s.Player.ActivePokemon(), s.Enemy.ActivePokemon()
	playerColor.Printf("you:   %-12s %s %d/%d [%s]\n", p.Base.Name, hpBar(p), p.HP, p.Base.MaxHP, p.Status)
	enemyColor.Printf("enemy: %-12s %s %d/%d [%s]\n", e.Base.Name, hpBar(e), e.HP, e.Base.MaxHP, e.Status)
}

func hpBar(p *battle.BattlePokemon) string {
	const width = 20
	filled := 0
	if p.Base.MaxHP > 0 {
		filled = p.HP * width / p.Base.MaxHP
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func printNewLog(s *battle.Session, seen int) int {
	for _, e := range s.Log[seen:] {
		if e.Critical {
			critColor.Println(" * " + e.Text)
		} else {
			logColor.Println(" - " + e.Text)
		}
	}
	return len(s.Log)
}

func promptInt(in *bufio.Scanner, label string, lo, hi int) int {
	for {
		fmt.Printf("%s [%d-%d]> ", label, lo, hi)
		if !in.Scan() {
			os.Exit(0)
		}
		n, err := strconv.Atoi(strings.TrimSpace(in.Text()))
		if err == nil && n >= lo && n <= hi {
			return n
		}
		fmt.Println("invalid choice")
	}
}
