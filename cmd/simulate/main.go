package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/rpslab/rps-opponent-go/internal/engine"
	"github.com/rpslab/rps-opponent-go/internal/game"
	"github.com/rpslab/rps-opponent-go/internal/neural"
	"github.com/rpslab/rps-opponent-go/internal/rng"
	"github.com/rpslab/rps-opponent-go/internal/scripting"
)

func main() {
	script := flag.String("script", "", "path to a JavaScript strategy file (required)")
	rounds := flag.Int("rounds", 100, "number of rounds to simulate")
	encoder := flag.String("encoder", engine.LayoutMinimal, "input encoding: minimal or extended")
	policy := flag.String("policy", engine.PolicyGreedy, "selection policy: greedy or sampling")
	hidden := flag.Int("hidden", 8, "hidden layer size")
	history := flag.Int("history", 3, "history window length")
	rate := flag.Float64("rate", engine.DefaultLearningRate, "learning rate")
	seed := flag.String("seed", "", "rng seed (random when empty)")
	flag.Parse()

	if *script == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *seed == "" {
		*seed = uuid.New().String()
	}

	source, err := os.ReadFile(*script)
	if err != nil {
		log.Fatalf("read script: %v", err)
	}

	session, err := newSession(*encoder, *policy, *hidden, *history, *rate, *seed)
	if err != nil {
		log.Fatalf("session setup: %v", err)
	}

	sim, err := scripting.NewSimulator(string(source), session)
	if err != nil {
		log.Fatalf("load strategy: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := sim.Run(ctx, *rounds)
	if err != nil {
		log.Fatalf("simulate: %v", err)
	}

	out := json.NewEncoder(os.Stdout)
	out.SetIndent("", "  ")
	if err := out.Encode(report); err != nil {
		log.Fatalf("encode report: %v", err)
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
