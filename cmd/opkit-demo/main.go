// Package main runs a sample command through the opkit pipeline: env
// configuration, optional tracing export, global middlewares, and a
// profile.create command with an internal display_name field.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/louisbranch/opkit/command"
	"github.com/louisbranch/opkit/config"
	"github.com/louisbranch/opkit/internal/telemetry"
	"github.com/louisbranch/opkit/pipeline"
	"github.com/louisbranch/opkit/schema"
)

const shutdownTimeout = 5 * time.Second

func main() {
	var name, surname string
	var printSchema bool
	flag.StringVar(&name, "name", "", "profile name")
	flag.StringVar(&surname, "surname", "", "profile surname")
	flag.BoolVar(&printSchema, "schema", false, "print the command schema and exit")
	flag.Parse()

	log.SetPrefix("[OPKIT-DEMO] ")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	shutdown, err := telemetry.Setup(ctx, "opkit-demo", cfg.OTelEndpoint)
	if err != nil {
		log.Fatalf("setup telemetry: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown telemetry: %v", err)
		}
	}()

	def := command.MustDefinition("profile.create",
		command.WithLocale(cfg.Locale),
		command.WithField(command.FieldSpec{
			Name: "name", Type: command.TypeString, Required: true, Trim: true,
			Validators: []command.ValidatorStep{
				command.Length(command.LengthOpts{Min: command.Int(1), Max: command.Int(64)}),
			},
		}),
		command.WithField(command.FieldSpec{
			Name: "surname", Type: command.TypeString, Required: true, Trim: true,
		}),
		command.WithField(command.FieldSpec{
			Name: "display_name", Type: command.TypeString, Internal: true,
		}),
		command.WithFill(fillDisplayName),
		command.WithHandler(createProfile),
	)

	if printSchema {
		s, err := schema.Generate(def)
		if err != nil {
			log.Fatalf("generate schema: %v", err)
		}
		encoded, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			log.Fatalf("encode schema: %v", err)
		}
		fmt.Println(string(encoded))
		return
	}

	runner := &pipeline.Runner{Global: cfg.GlobalMiddlewares()}
	params := map[string]any{"name": name, "surname": surname}
	meta := map[string]any{"source": "cli"}

	response, err := runner.Run(ctx, def, params, meta)
	if err != nil {
		var verr *command.ValidationError
		if errors.As(err, &verr) {
			log.Printf("invalid input:")
			for field, messages := range verr.Changeset.Errors {
				for _, message := range messages {
					log.Printf("  %s %s", field, message)
				}
			}
			os.Exit(1)
		}
		log.Fatalf("run command: %v", err)
	}
	log.Printf("response: %v", response)
}

func fillDisplayName(field string, cs *command.Changeset, params, meta map[string]any) (any, error) {
	name, _ := cs.GetChange("name")
	surname, _ := cs.GetChange("surname")
	return fmt.Sprintf("%v %v", name, surname), nil
}

func createProfile(ctx context.Context, cmd *command.Command) (any, error) {
	return map[string]any{
		"display_name": cmd.StringField("display_name"),
	}, nil
}
