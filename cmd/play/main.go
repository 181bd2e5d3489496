package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/rpslab/rps-opponent-go/internal/engine"
	"github.com/rpslab/rps-opponent-go/internal/game"
	"github.com/rpslab/rps-opponent-go/internal/neural"
	"github.com/rpslab/rps-opponent-go/internal/rng"
)

func main() {
	encoder := flag.String("encoder", engine.LayoutMinimal, "input encoding: minimal or extended")
	policy := flag.String("policy", engine.PolicyGreedy, "selection policy: greedy or sampling")
	hidden := flag.Int("hidden", 8, "hidden layer size")
	history := flag.Int("history", 3, "history window length")
	rate := flag.Float64("rate", engine.DefaultLearningRate, "learning rate")
	seed := flag.String("seed", "", "rng seed (random when empty)")
	flag.Parse()

	if *seed == "" {
		*seed = uuid.New().String()
	}

	session, err := newSession(*encoder, *policy, *hidden, *history, *rate, *seed)
	if err != nil {
		log.Fatalf("session setup: %v", err)
	}

	fmt.Println("rock-paper-scissors against an adapting opponent")
	fmt.Println("moves: r(ock), p(aper), s(cissors); also: probs, quit")
	fmt.Printf("seed: %s\n\n", *seed)

	var playerWins, computerWins, draws int
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.ToLower(strings.TrimSpace(scanner.Text()))
		switch input {
		case "":
			continue
		case "q", "quit", "exit":
			fmt.Printf("final score: you %d, computer %d, draws %d\n", playerWins, computerWins, draws)
			return
		case "probs":
			printProbs(session.Probabilities())
			continue
		}

		choice, err := game.ParseChoice(input)
		if err != nil {
			fmt.Printf("unknown input %q\n", input)
			continue
		}

		res, err := session.Play(choice)
		if err != nil {
			log.Fatalf("play: %v", err)
		}

		switch res.Round.Outcome() {
		case game.PlayerWins:
			playerWins++
			fmt.Printf("you: %s  computer: %s  -> you win\n", res.Round.Player, res.Round.Computer)
		case game.ComputerWins:
			computerWins++
			fmt.Printf("you: %s  computer: %s  -> computer wins\n", res.Round.Player, res.Round.Computer)
		default:
			draws++
			fmt.Printf("you: %s  computer: %s  -> draw\n", res.Round.Player, res.Round.Computer)
		}
		fmt.Printf("score: you %d, computer %d, draws %d\n", playerWins, computerWins, draws)
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("read input: %v", err)
	}
}

func newSession(encoder, policy string, hidden, history int, rate float64, seed string) (*engine.Session, error) {
	enc, err := engine.NewEncoder(encoder)
	if err != nil {
		return nil, err
	}
	policyStream := rng.New(seed + "/policy")
	pol, err := engine.NewPolicy(policy, policyStream.Next)
	if err != nil {
		return nil, err
	}
	net, err := neural.New(neural.Config{
		InputSize:   enc.Width(),
		HistorySize: history,
		HiddenSize:  hidden,
		OutputSize:  game.NumChoices,
	}, rng.New(seed))
	if err != nil {
		return nil, err
	}
	session := engine.NewSession(enc, pol, rate)
	if err := session.Start(net); err != nil {
		return nil, err
	}
	return session, nil
}

func printProbs(probs []float64) {
	for i, p := range probs {
		fmt.Printf("  %-8s %.4f\n", game.Choice(i), p)
	}
}
