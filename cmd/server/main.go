package main

import (
	"log"
	"net/http"

	"github.com/mariaspatani/SmartTodo/internal/config"
	"github.com/mariaspatani/SmartTodo/internal/serverapp"
)

func main() {
	cfg, err := config.Load("smarttodo.yml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	cfg.ApplyEnv()

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config:        cfg,
		DataDir:       cfg.Storage.DataDir,
		StaticDir:     "static",
		UseDiskStatic: config.UseDiskStaticByEnv(),
		Logger:        log.Default(),
	})
	if err != nil {
		log.Fatalf("build server: %v", err)
	}

	log.Printf("listening on http://localhost%s", cfg.Server.Addr)
	log.Fatal(http.ListenAndServe(cfg.Server.Addr, handler))
}
