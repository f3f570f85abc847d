// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/z5labs/envtree"

	"go.uber.org/zap"
)

type serverConfig struct {
	Addr         string        `default:":8080"`
	ReadTimeout  time.Duration `default:"5s"`
	WriteTimeout time.Duration `default:"10s"`
}

type dbConfig struct {
	Host     string
	Port     uint16 `default:"5432"`
	Database string `env:"NAME"`
	User     string `default:"postgres"`
}

var server = envtree.Schema[serverConfig]("WEBAPP_HTTP_", nil, envtree.Args{
	envtree.Arg("addr", envtree.Auto(envtree.Description("Address for the HTTP server to listen on."))),
	envtree.Arg("readtimeout", envtree.Auto(envtree.Key("READ_TIMEOUT"))),
	envtree.Arg("writetimeout", envtree.Auto(envtree.Key("WRITE_TIMEOUT"))),
}, envtree.Description("HTTP server settings"))

var db = envtree.Schema[dbConfig]("WEBAPP_DB_", nil, envtree.Args{
	envtree.Arg("host", envtree.Auto(envtree.Required(), envtree.Description("Database host to connect to."))),
	envtree.Arg("port", envtree.Auto()),
	envtree.Arg("database", envtree.Auto(envtree.Required(), envtree.Description("Name of the database."))),
	envtree.Arg("user", envtree.Auto()),
}, envtree.Description("Database connection settings"))

func main() {
	log := zap.Must(zap.NewProduction())
	defer log.Sync()

	srvCfg, err := server.Get()
	if err != nil {
		logConfigError(log, err)
		return
	}
	dbCfg, err := db.Get()
	if err != nil {
		logConfigError(log, err)
		return
	}

	log.Info("resolved configuration",
		zap.String("http.addr", srvCfg.Addr),
		zap.String("db.host", dbCfg.Host),
		zap.Uint16("db.port", dbCfg.Port),
		zap.String("db.name", dbCfg.Database),
	)

	srv := &http.Server{
		Addr:         srvCfg.Addr,
		ReadTimeout:  srvCfg.ReadTimeout,
		WriteTimeout: srvCfg.WriteTimeout,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "connected to %s:%d/%s\n", dbCfg.Host, dbCfg.Port, dbCfg.Database)
		}),
	}

	log.Info("starting http server", zap.String("addr", srvCfg.Addr))
	err = srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("http server failed", zap.Error(err))
	}
}

func logConfigError(log *zap.Logger, err error) {
	var miss envtree.MissingVariableError
	if errors.As(err, &miss) {
		log.Error("missing environment variable",
			zap.String("key", miss.Key),
			zap.Strings("help", envtree.DescribeFlat()),
		)
		return
	}
	log.Error("failed to resolve configuration", zap.Error(err))
}
