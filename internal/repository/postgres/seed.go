package postgres

import (
	"context"

	"github.com/devmatch/backend/internal/domain"
	"github.com/devmatch/backend/internal/repository"
)

var defaultTechnologies = []*domain.Technology{
	{Name: "javascript", Type: domain.TechTypeLanguage},
	{Name: "typescript", Type: domain.TechTypeLanguage},
	{Name: "python", Type: domain.TechTypeLanguage},
	{Name: "go", Type: domain.TechTypeLanguage},
	{Name: "rust", Type: domain.TechTypeLanguage},
	{Name: "java", Type: domain.TechTypeLanguage},
	{Name: "kotlin", Type: domain.TechTypeLanguage},
	{Name: "ruby", Type: domain.TechTypeLanguage},
	{Name: "react", Type: domain.TechTypeFramework},
	{Name: "nextjs", Type: domain.TechTypeFramework},
	{Name: "vue", Type: domain.TechTypeFramework},
	{Name: "svelte", Type: domain.TechTypeFramework},
	{Name: "django", Type: domain.TechTypeFramework},
	{Name: "rails", Type: domain.TechTypeFramework},
	{Name: "spring", Type: domain.TechTypeFramework},
	{Name: "express", Type: domain.TechTypeFramework},
	{Name: "postgres", Type: domain.TechTypeDatabase},
	{Name: "mysql", Type: domain.TechTypeDatabase},
	{Name: "mongodb", Type: domain.TechTypeDatabase},
	{Name: "redis", Type: domain.TechTypeDatabase},
	{Name: "docker", Type: domain.TechTypeTool},
	{Name: "kubernetes", Type: domain.TechTypeTool},
	{Name: "git", Type: domain.TechTypeTool},
	{Name: "terraform", Type: domain.TechTypeTool},
	{Name: "aws", Type: domain.TechTypeCloud},
	{Name: "gcp", Type: domain.TechTypeCloud},
	{Name: "azure", Type: domain.TechTypeCloud},
}

// SeedTechnologies installs the default catalog. Safe to run on every
// startup; existing rows are updated in place.
func SeedTechnologies(ctx context.Context, repo repository.TechnologyRepository) error {
	return repo.UpsertMany(ctx, defaultTechnologies)
}
