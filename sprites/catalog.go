package sprites

import (
	"log"

	"github.com/phanxgames/bunnyworld/behavior"
)

// Counts is how many variants of each ambient creature to paint.
type Counts struct {
	Fireflies   int
	Birds       int
	Butterflies int
	Particles   int
}

// DefaultCounts covers every screen: the menu uses 6 fireflies and 8
// particles, Mirror City 8 and 10.
var DefaultCounts = Counts{Fireflies: 8, Birds: 4, Butterflies: 8, Particles: 10}

// Catalog lists everything painted at boot.
type Catalog struct {
	Fireflies   []behavior.CreatureData
	Birds       []behavior.CreatureData
	Butterflies []behavior.CreatureData
	Particles   []behavior.CreatureData
	Bunnies     []behavior.BunnyConfig
	OwlAnims    []string
}

// Take returns the first n entries of list, or all of them when n is larger.
func Take(list []behavior.CreatureData, n int) []behavior.CreatureData {
	return list[:min(n, len(list))]
}

// Job is one step of asset generation.
type Job struct {
	Name string
	Run  func(reg Registry, c *Catalog)
}

// Jobs returns the generation steps for counts and roster, in boot order:
// creatures, one step per bunny, then the owl.
func Jobs(counts Counts, roster []behavior.BunnyConfig) []Job {
	jobs := []Job{
		{"fireflies", func(reg Registry, c *Catalog) { c.Fireflies = GenerateFireflies(reg, counts.Fireflies) }},
		{"birds", func(reg Registry, c *Catalog) { c.Birds = GenerateBirds(reg, counts.Birds) }},
		{"butterflies", func(reg Registry, c *Catalog) { c.Butterflies = GenerateButterflies(reg, counts.Butterflies) }},
		{"magic particles", func(reg Registry, c *Catalog) { c.Particles = GenerateMagicParticles(reg, counts.Particles) }},
	}
	for _, cfg := range roster {
		jobs = append(jobs, Job{"bunny " + cfg.Name, func(reg Registry, c *Catalog) {
			if keys := GenerateBunny(reg, cfg); len(keys) < len(BunnyAnims) {
				log.Printf("sprites: bunny %s has %d of %d animations", cfg.Name, len(keys), len(BunnyAnims))
			}
			c.Bunnies = append(c.Bunnies, cfg)
		}})
	}
	jobs = append(jobs, Job{"owl", func(reg Registry, c *Catalog) { c.OwlAnims = GenerateOwl(reg) }})
	return jobs
}

// Generate runs every job at once.
func Generate(reg Registry, counts Counts, roster []behavior.BunnyConfig) *Catalog {
	c := &Catalog{}
	for _, j := range Jobs(counts, roster) {
		j.Run(reg, c)
	}
	return c
}
