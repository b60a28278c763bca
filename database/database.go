package database

import "path/filepath"

const (
	ProjectsFile      = "projects.json"
	LeadsFile         = "leads.json"
	PresentationsFile = "presentations.json"
)

type Database struct {
	projectRepo      *ProjectRepo
	leadRepo         *LeadRepo
	presentationRepo *PresentationRepo
}

// New wires one repo per collection file under dataDir. Project and lead
// ids come from a shared generator.
func New(dataDir string, files FileRemover) Database {
	ids := NewIDGenerator()
	return Database{
		projectRepo:      NewProjectRepo(filepath.Join(dataDir, ProjectsFile), ids),
		leadRepo:         NewLeadRepo(filepath.Join(dataDir, LeadsFile), ids),
		presentationRepo: NewPresentationRepo(filepath.Join(dataDir, PresentationsFile), files),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) LeadRepo() *LeadRepo {
	return d.leadRepo
}

func (d Database) PresentationRepo() *PresentationRepo {
	return d.presentationRepo
}
