// Copyright 2025 Quarry Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/quarrylabs/quarry"
	"github.com/quarrylabs/quarry/ai"
	"github.com/quarrylabs/quarry/core"
	"github.com/quarrylabs/quarry/ingest"
	"github.com/quarrylabs/quarry/retrieval"
	"github.com/quarrylabs/quarry/storage"
)

func main() {
	app := &cli.App{
		Name:  "quarry",
		Usage: "Durable content ingestion and semantic retrieval over BadgerDB",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
				Value:   "./quarry_db",
			},
			&cli.StringFlag{
				Name:  "embedding-host",
				Usage: "Embedding service host URL",
				Value: "http://localhost:11434",
			},
			&cli.StringFlag{
				Name:  "embedding-model",
				Usage: "Embedding model name",
				Value: "nomic-embed-text",
			},
			&cli.StringFlag{
				Name:    "rerank-api-key",
				Usage:   "API key for the re-ranking service",
				EnvVars: []string{"QUARRY_RERANK_API_KEY"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "seed",
				Usage:  "Create an organization and a namespace to ingest into",
				Action: seedCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "org",
						Usage: "Organization name",
						Value: "default",
					},
					&cli.StringFlag{
						Name:  "namespace",
						Usage: "Namespace name",
						Value: "default",
					},
				},
			},
			{
				Name:      "ingest",
				Usage:     "Ingest text, a file URL or a managed file into a namespace",
				Action:    ingestCommand,
				ArgsUsage: "<text|url|key>",
				Flags: []cli.Flag{
					&cli.Uint64Flag{
						Name:     "namespace",
						Aliases:  []string{"n"},
						Usage:    "Namespace ID to ingest into",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "type",
						Usage: "Payload type (text, url, managed)",
						Value: "text",
					},
					&cli.StringFlag{
						Name:  "name",
						Usage: "Display name for the ingested document",
					},
					&cli.StringFlag{
						Name:  "tenant",
						Usage: "Tenant ID for multi-tenant namespaces",
					},
					&cli.DurationFlag{
						Name:  "wait",
						Usage: "How long to wait for the job to finish",
						Value: 2 * time.Minute,
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Run a semantic retrieval query against a namespace",
				Action:    searchCommand,
				ArgsUsage: "<query>",
				Flags: []cli.Flag{
					&cli.Uint64Flag{
						Name:     "namespace",
						Aliases:  []string{"n"},
						Usage:    "Namespace ID to query",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of results to retrieve",
						Value: retrieval.DefaultTopK,
					},
					&cli.Float64Flag{
						Name:  "min-score",
						Usage: "Drop results scoring below this (inclusive)",
					},
					&cli.StringFlag{
						Name:  "tenant",
						Usage: "Tenant ID for multi-tenant namespaces",
					},
					&cli.BoolFlag{
						Name:  "rerank",
						Usage: "Re-rank results with the re-ranking service",
					},
				},
			},
			{
				Name:   "jobs",
				Usage:  "List a namespace's ingest jobs",
				Action: jobsCommand,
				Flags: []cli.Flag{
					&cli.Uint64Flag{
						Name:     "namespace",
						Aliases:  []string{"n"},
						Usage:    "Namespace ID to list",
						Required: true,
					},
				},
			},
			{
				Name:      "delete-job",
				Usage:     "Delete an ingest job and everything it produced",
				Action:    deleteJobCommand,
				ArgsUsage: "<job-id>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "delete-namespace",
						Usage: "Also delete the namespace if this was its last job",
					},
					&cli.BoolFlag{
						Name:  "delete-org",
						Usage: "Also delete the organization if this was its last namespace",
					},
					&cli.DurationFlag{
						Name:  "wait",
						Usage: "How long to wait for the cascade to finish",
						Value: 2 * time.Minute,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openEngine(c *cli.Context) (*quarry.Engine, error) {
	config, err := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithRerankAPIKey(c.String("rerank-api-key")),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	engine, err := quarry.NewEngine(c.String("db"), quarry.WithAIConfig(config))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return engine, nil
}

func seedCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx := context.Background()
	org, err := engine.CreateOrganization(ctx, &core.Organization{Name: c.String("org")})
	if err != nil {
		return fmt.Errorf("failed to create organization: %w", err)
	}
	ns, err := engine.CreateNamespace(ctx, &core.Namespace{
		OrganizationId: org.Id,
		Name:           c.String("namespace"),
		EmbeddingModel: c.String("embedding-model"),
	})
	if err != nil {
		return fmt.Errorf("failed to create namespace: %w", err)
	}

	fmt.Printf("organization %d (%s)\n", org.Id, org.Name)
	fmt.Printf("namespace    %d (%s)\n", ns.Id, ns.Name)
	return nil
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("missing content argument")
	}
	content := strings.Join(c.Args().Slice(), " ")

	var payload core.Payload
	switch c.String("type") {
	case "text":
		payload = core.Payload{Type: core.PayloadTypeText, Name: c.String("name"), Text: content}
	case "url":
		payload = core.Payload{Type: core.PayloadTypeURLs, URLs: c.Args().Slice()}
	case "managed":
		payload = core.Payload{Type: core.PayloadTypeManagedFile, Name: c.String("name"), Key: content}
	default:
		return fmt.Errorf("unknown payload type %q: must be one of text, url, managed", c.String("type"))
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx := context.Background()
	job, err := engine.CreateIngestJob(ctx, &core.IngestJob{
		NamespaceId: core.ID(c.Uint64("namespace")),
		TenantId:    c.String("tenant"),
		Payload:     payload,
	})
	if err != nil {
		return fmt.Errorf("failed to create ingest job: %w", err)
	}
	fmt.Fprintf(os.Stderr, "job %d queued\n", job.Id)

	final, err := waitForJob(ctx, engine, job.Id, c.Duration("wait"))
	if err != nil {
		return err
	}
	if final.Status == core.JobStatusFailed {
		return fmt.Errorf("job %d failed: %s", final.Id, final.Error)
	}
	fmt.Printf("job %d %s\n", final.Id, final.Status)
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("missing query argument")
	}
	query := strings.Join(c.Args().Slice(), " ")

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	opts := &retrieval.QueryOptions{
		TopK:            c.Int("top-k"),
		TenantId:        c.String("tenant"),
		IncludeMetadata: true,
		Rerank:          c.Bool("rerank"),
	}
	if c.IsSet("min-score") {
		minScore := float32(c.Float64("min-score"))
		opts.MinScore = &minScore
	}

	resp, err := engine.Query(context.Background(), core.ID(c.Uint64("namespace")), query, opts)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	fmt.Printf("Found %d hits\n", len(resp.Results))
	for i, hit := range resp.Results {
		if hit.RerankScore != nil {
			fmt.Printf("%d: [%0.3f/%0.3f] %s\n", i, hit.Score, *hit.RerankScore, hit.Text)
			continue
		}
		fmt.Printf("%d: [%0.3f] %s\n", i, hit.Score, hit.Text)
	}
	return nil
}

func jobsCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	jobs, err := engine.ListJobs(context.Background(), core.ID(c.Uint64("namespace")))
	if err != nil {
		return fmt.Errorf("failed to list jobs: %w", err)
	}

	for _, job := range jobs {
		fmt.Printf("%d\t%s\t%s\t%s\n", job.Id, job.Status, job.Payload.Type, job.QueuedAt.Format(time.RFC3339))
	}
	return nil
}

func deleteJobCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("missing job-id argument")
	}
	var jobID core.ID
	if _, err := fmt.Sscanf(c.Args().First(), "%d", &jobID); err != nil {
		return fmt.Errorf("invalid job id %q", c.Args().First())
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	ctx := context.Background()
	err = engine.DeleteIngestJob(ctx, jobID, ingest.DeleteOptions{
		DeleteNamespaceWhenDone: c.Bool("delete-namespace"),
		DeleteOrgWhenDone:       c.Bool("delete-org"),
	})
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	deadline := time.Now().Add(c.Duration("wait"))
	for time.Now().Before(deadline) {
		_, err := engine.GetJob(ctx, jobID)
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Printf("job %d deleted\n", jobID)
			return nil
		}
		if err != nil {
			return err
		}
		time.Sleep(250 * time.Millisecond)
	}
	return fmt.Errorf("timed out waiting for job %d to delete", jobID)
}

func waitForJob(ctx context.Context, engine *quarry.Engine, jobID core.ID, wait time.Duration) (*core.IngestJob, error) {
	deadline := time.Now().Add(wait)
	for time.Now().Before(deadline) {
		job, err := engine.GetJob(ctx, jobID)
		if err != nil {
			return nil, err
		}
		if job.Status == core.JobStatusCompleted || job.Status == core.JobStatusFailed {
			return job, nil
		}
		time.Sleep(250 * time.Millisecond)
	}
	return nil, fmt.Errorf("timed out waiting for job %d", jobID)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
