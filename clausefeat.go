// Copyright 2023 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2023 Martin Zimandl <martin.zimandl@gmail.com>
// Copyright 2023 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"clausefeat/cnf"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	redisConnectionTestTimeout = 120 * time.Second
)

var (
	version   string
	buildDate string
	gitCommit string
)

type versionInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"buildDate"`
	GitCommit string `json:"gitCommit"`
}

type service interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
}

func getEnv(name string) string {
	for _, p := range os.Environ() {
		items := strings.SplitN(p, "=", 2)
		if len(items) == 2 && items[0] == name {
			return items[1]
		}
	}
	return ""
}

func getRequestOrigin(ctx *gin.Context) string {
	currOrigin, ok := ctx.Request.Header["Origin"]
	if ok {
		return currOrigin[0]
	}
	return ""
}

func additionalLogEvents() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		logging.AddLogEvent(ctx, "userAgent", ctx.Request.UserAgent())
		ctx.Next()
	}
}

func CORSMiddleware(conf *cnf.Conf) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if strings.HasSuffix(ctx.Request.URL.Path, "/openapi") {
			ctx.Header("Access-Control-Allow-Origin", "*")
			ctx.Header("Access-Control-Allow-Methods", "GET")
			ctx.Header("Access-Control-Allow-Headers", "Content-Type")

		} else {
			var allowedOrigin string
			currOrigin := getRequestOrigin(ctx)
			for _, origin := range conf.CorsAllowedOrigins {
				if currOrigin == origin {
					allowedOrigin = origin
					break
				}
			}
			if allowedOrigin != "" {
				ctx.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
				ctx.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
				ctx.Writer.Header().Set(
					"Access-Control-Allow-Headers",
					"Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With",
				)
				ctx.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
			}

			if ctx.Request.Method == "OPTIONS" {
				ctx.AbortWithStatus(204)
				return
			}
		}
		ctx.Next()
	}
}

func AuthRequired(conf *cnf.Conf) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if len(conf.AuthHeaderName) > 0 && !collections.SliceContains(conf.AuthTokens, ctx.GetHeader(conf.AuthHeaderName)) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		ctx.Next()
	}
}

func cleanVersionInfo(v string) string {
	return strings.TrimLeft(strings.Trim(v, "'"), "v")
}

func main() {
	version := versionInfo{
		Version:   cleanVersionInfo(version),
		BuildDate: cleanVersionInfo(buildDate),
		GitCommit: cleanVersionInfo(gitCommit),
	}
	batchNumWorkers := flag.Int("num-workers", 0, "number of rows processed concurrently (overrides batch.numWorkers)")
	batchFormat := flag.String("format", "", "input/output format (csv, tsv, jsonl); by default derived from file extensions")
	batchArchive := flag.String("archive", "", "SQLite archive file for annotated rows (overrides archivePath)")
	batchNoProgress := flag.Bool("no-progress", false, "do not show a progress bar")
	runsLimit := flag.Int("limit", 20, "max. number of listed runs (0 = all)")
	runID := flag.String("run", "", "print annotated rows of an archived run instead of listing runs")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "CLAUSEFEAT - annotation of Russian propositional attitude constructions\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n\t%s [options] server config.json\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "%s [options] worker config.json\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "%s [options] annotate config.json input.csv output.csv\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "%s [options] runs config.json\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "%s [options] test config.json\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "%s version\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	action := flag.Arg(0)
	if action == "version" {
		fmt.Printf("clausefeat %s\nbuild date: %s\nlast commit: %s\n", version.Version, version.BuildDate, version.GitCommit)
		return
	}
	conf := cnf.LoadConfig(flag.Arg(1))

	switch action {
	case "worker":
		var wPath string
		if conf.LogFile != "" {
			wPath = filepath.Join(filepath.Dir(conf.LogFile), "worker.log")
		}
		logging.SetupLogging(conf.Logging(wPath))
		log.Logger = log.Logger.With().Str("worker", getWorkerID()).Logger()
	case "test":
		logging.SetupLogging(conf.Logging(""))
		cnf.ValidateAndDefaults(conf, true)
		log.Info().Msg("config OK")
		return
	default:
		logging.SetupLogging(conf.Logging(conf.LogFile))
	}

	log.Info().Msg("Starting CLAUSEFEAT")

	switch action {
	case "server":
		cnf.ValidateAndDefaults(conf, true)
		runApiServer(conf, version)
	case "worker":
		cnf.ValidateAndDefaults(conf, true)
		runWorker(conf)
	case "annotate":
		cnf.ValidateAndDefaults(conf, false)
		if *batchNumWorkers > 0 {
			conf.Batch.NumWorkers = *batchNumWorkers
		}
		if *batchArchive != "" {
			conf.ArchivePath = *batchArchive
		}
		runBatch(conf, batchArgs{
			inputPath:    flag.Arg(2),
			outputPath:   flag.Arg(3),
			format:       *batchFormat,
			showProgress: !*batchNoProgress,
		})
	case "runs":
		if *batchArchive != "" {
			conf.ArchivePath = *batchArchive
		}
		listRuns(conf, runsArgs{
			limit:  *runsLimit,
			runID:  *runID,
			format: *batchFormat,
		})
	default:
		log.Fatal().Msgf("Unknown action %s", action)
	}
}
