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
	"clausefeat/collab"
	"clausefeat/docs"
	"clausefeat/handlers"
	"clausefeat/monitoring"
	monitoringActions "clausefeat/monitoring/handlers"
	"clausefeat/proxied"
	"clausefeat/rdb"
	"context"
	"embed"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type apiServer struct {
	server    *http.Server
	conf      *cnf.Conf
	radapter  *rdb.Adapter
	jobLogger *monitoring.WorkerJobLogger
	version   versionInfo
}

//go:embed docs/swagger.json
var swaggerJSON embed.FS

func mkServerInfo(conf *cnf.Conf, version versionInfo) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		uniresp.WriteJSONResponse(
			ctx.Writer,
			map[string]any{
				"name":      "CLAUSEFEAT",
				"version":   version,
				"publicUrl": conf.PublicURL,
				"parser":    conf.Parser.Model,
				"analyzer":  conf.Analyzer != nil,
			},
		)
	}
}

func (api *apiServer) Start(ctx context.Context) {
	if !api.conf.IsDebugMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(additionalLogEvents())
	engine.Use(logging.GinMiddleware())
	engine.Use(uniresp.AlwaysJSONContentType())
	engine.Use(CORSMiddleware(api.conf))
	engine.NoMethod(uniresp.NoMethodHandler)
	engine.NoRoute(uniresp.NotFoundHandler)

	protected := engine.Group("/").Use(AuthRequired(api.conf))

	engine.GET("/", mkServerInfo(api.conf, api.version))

	docs.SwaggerInfo.Version = api.version.Version
	engine.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// also serve the JSON variant of the docs
	engine.GET(
		"/openapi",
		func(ctx *gin.Context) {
			jsonFile, err := swaggerJSON.ReadFile("docs/swagger.json")
			if err != nil {
				err = fmt.Errorf("Failed to read Swagger file: %w", err)
				uniresp.RespondWithErrorJSON(ctx, err, http.StatusInternalServerError)
				return
			}
			uniresp.WriteRawJSONResponse(ctx.Writer, jsonFile)
		},
	)

	annotActions := handlers.NewActions(api.radapter, api.conf.MaxBatchRows)

	protected.POST(
		"/annotate", annotActions.Annotate)

	protected.POST(
		"/annotate-batch", annotActions.AnnotateBatch)

	parserActions := proxied.NewActions(collab.NewUDPipeClient(api.conf.Parser))
	protected.POST(
		"/parse", parserActions.RemoteParser)

	monActions := monitoringActions.NewActions(api.jobLogger)

	engine.GET(
		"/monitoring/workers-load", monActions.WorkersLoad)

	engine.GET(
		"/monitoring/workers-load/:workerId", monActions.SingleWorkerLoad)

	engine.GET(
		"/monitoring/recent-records", monActions.RecentRecords)

	log.Info().Msgf("starting to listen at %s:%d", api.conf.ListenAddress, api.conf.ListenPort)
	api.server = &http.Server{
		Handler:      engine,
		Addr:         fmt.Sprintf("%s:%d", api.conf.ListenAddress, api.conf.ListenPort),
		WriteTimeout: time.Duration(api.conf.ServerWriteTimeoutSecs) * time.Second,
		ReadTimeout:  time.Duration(api.conf.ServerReadTimeoutSecs) * time.Second,
	}
	go func() {
		if err := api.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()
}

func (api *apiServer) Stop(ctx context.Context) error {
	log.Warn().Msg("shutting down CLAUSEFEAT HTTP API server")
	return api.server.Shutdown(ctx)
}

func createStatusWriter(ctx context.Context, conf *cnf.Conf) monitoring.StatusWriter {
	if conf.Monitoring == nil {
		log.Info().Msg("monitoring database not configured, job statistics will not be stored")
		return &monitoring.NullStatusWriter{}
	}
	ans, err := monitoring.NewTimescaleDBWriter(ctx, conf.Monitoring.DB, conf.TimezoneLocation())
	if err != nil {
		log.Error().Err(err).Msg("failed to create TimescaleDB writer, job statistics will not be stored")
		return &monitoring.NullStatusWriter{}
	}
	return ans
}

func runApiServer(conf *cnf.Conf, version versionInfo) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jobLogger := monitoring.NewWorkerJobLogger(
		createStatusWriter(ctx, conf), conf.TimezoneLocation())
	radapter := rdb.NewAdapter(conf.Redis, ctx, jobLogger)
	err := radapter.TestConnection(redisConnectionTestTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
		return
	}
	server := &apiServer{
		conf:      conf,
		radapter:  radapter,
		jobLogger: jobLogger,
		version:   version,
	}
	runServices(ctx, []service{jobLogger, server})
}
