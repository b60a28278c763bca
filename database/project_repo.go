package database

import (
	"strconv"
	"time"

	"github.com/rpupo63/diaver-site-backend/errs"
	"github.com/rpupo63/diaver-site-backend/models"
)

type ProjectRepo struct {
	collection *Collection[[]models.Project]
	ids        *IDGenerator
	now        func() time.Time
}

func NewProjectRepo(path string, ids *IDGenerator) *ProjectRepo {
	return &ProjectRepo{
		collection: NewCollection("projects", path, func() []models.Project { return []models.Project{} }),
		ids:        ids,
		now:        time.Now,
	}
}

// FindAll returns every project in file order.
func (r *ProjectRepo) FindAll() []models.Project {
	projects := r.collection.Load()
	if projects == nil {
		return []models.Project{}
	}
	return projects
}

// FindByCategory returns the projects of one category in file order.
// An empty category matches everything.
func (r *ProjectRepo) FindByCategory(category string) []models.Project {
	all := r.FindAll()
	if category == "" {
		return all
	}
	filtered := make([]models.Project, 0, len(all))
	for _, p := range all {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// FindByID returns a project by its id
func (r *ProjectRepo) FindByID(id int64) (*models.Project, error) {
	for _, p := range r.FindAll() {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, projectNotFound(id)
}

// Add validates the input, assigns an id and appends the project.
func (r *ProjectRepo) Add(in models.ProjectInput) (*models.Project, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var created models.Project
	err := r.collection.Update(func(projects *[]models.Project) error {
		var floor int64
		for _, p := range *projects {
			floor = max(floor, p.ID)
		}
		created = models.NewProject(r.ids.Next(floor), in, r.now())
		*projects = append(nonNilProjects(*projects), created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update merges patch into the stored project. The id and createdAt never change.
func (r *ProjectRepo) Update(id int64, patch models.ProjectPatch) (*models.Project, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var updated models.Project
	err := r.collection.Update(func(projects *[]models.Project) error {
		for i := range *projects {
			if (*projects)[i].ID == id {
				(*projects)[i].Apply(patch, r.now())
				updated = (*projects)[i]
				return nil
			}
		}
		return projectNotFound(id)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a project by id and returns the removed record.
func (r *ProjectRepo) Delete(id int64) (*models.Project, error) {
	var removed models.Project
	err := r.collection.Update(func(projects *[]models.Project) error {
		for i, p := range *projects {
			if p.ID == id {
				removed = p
				*projects = append((*projects)[:i:i], (*projects)[i+1:]...)
				return nil
			}
		}
		return projectNotFound(id)
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

// Counts returns the number of projects and how many of them are featured.
func (r *ProjectRepo) Counts() (total, featured int) {
	projects := r.FindAll()
	for _, p := range projects {
		if p.Featured {
			featured++
		}
	}
	return len(projects), featured
}

func projectNotFound(id int64) error {
	return errs.NewNotFound("project", strconv.FormatInt(id, 10))
}

func nonNilProjects(projects []models.Project) []models.Project {
	if projects == nil {
		return []models.Project{}
	}
	return projects
}
