package main

import (
	"flag"
	"log"

	"github.com/Garsondee/Zombie-Sense/internal/config"
	"github.com/Garsondee/Zombie-Sense/internal/game"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	var scenarioPath string
	var seed int64
	flag.StringVar(&scenarioPath, "scenario", "", "scenario YAML file (empty = built-in default)")
	flag.Int64Var(&seed, "seed", 0, "seed for random actor placement (0 = scenario seed)")
	flag.Parse()

	sc := config.DefaultScenario()
	if scenarioPath != "" {
		var err error
		if sc, err = config.LoadScenario(scenarioPath); err != nil {
			log.Fatal(err)
		}
	}

	g, err := game.New(sc, seed)
	if err != nil {
		log.Fatal(err)
	}
	w, h := g.WindowSize()
	ebiten.SetWindowTitle("Zombie Sense: " + sc.Name)
	ebiten.SetWindowSize(w, h)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
