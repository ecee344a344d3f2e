package main

import (
	"context"
	"fmt"

	"github.com/comalice/microstep/internal/core"
	"github.com/comalice/microstep/internal/primitives"
	"github.com/comalice/microstep/internal/production"
)

func main() {
	addTen := primitives.FieldFn(func(ctx primitives.Context, event primitives.Event) (any, error) {
		return ctx.Value("amount").(int) + 10, nil
	})
	fullEnough := primitives.GuardFn(func(ctx primitives.Context, event primitives.Event) (bool, error) {
		return ctx.Value("amount").(int) >= 30, nil
	})

	filling := primitives.NewStateConfig("filling")
	filling.AddTransition("FILL", primitives.TransitionConfig{
		Actions: []primitives.ActionSpec{
			primitives.Assign(map[string]any{"amount": addTen}),
			primitives.Do(func(ctx primitives.Context, event primitives.Event) error {
				fmt.Printf("filled to %v\n", ctx.Value("amount"))
				return nil
			}),
		},
	})
	filling.Always("full", primitives.TransitionConfig{Guard: fullEnough})
	full := primitives.NewStateConfig("full")

	config := primitives.MachineConfig{
		ID:      "tank",
		Initial: "filling",
		Context: map[string]any{"amount": 0},
		States: map[string]*primitives.StateConfig{
			"filling": filling,
			"full":    full,
		},
	}

	publishChan := make(chan core.TransitionRecord, 100)
	publisher := production.NewChannelPublisher(publishChan)

	m, err := core.NewMachine(config, core.WithListener(publisher.Listen()))
	if err != nil {
		panic(err)
	}

	state, err := m.InitialState()
	if err != nil {
		panic(err)
	}
	fmt.Println("Initial state:", state.Value)

	for i := 0; i < 4; i++ {
		state, err = m.Send(state, primitives.NewEvent("FILL", nil))
		if err != nil {
			fmt.Printf("Send error: %v\n", err)
			break
		}
		fmt.Printf("--- Send %d: state=%s amount=%v ---\n", i+1, state.Value, state.Context.Value("amount"))

		// Demo publish consumption
	drain:
		for {
			select {
			case record := <-publishChan:
				fmt.Printf("Published: %s -> %s (%s)\n", record.From, record.To.Value, record.Event.Type)
			default:
				break drain
			}
		}
	}

	persister, err := production.NewJSONPersister("/tmp")
	if err != nil {
		panic(err)
	}
	if err := persister.Save(context.Background(), state.Snapshot(m.ID())); err != nil {
		panic(err)
	}
	fmt.Println("Snapshot saved to /tmp/tank.json")
}
