package database

import (
	"strconv"
	"time"

	"github.com/rpupo63/diaver-site-backend/errs"
	"github.com/rpupo63/diaver-site-backend/models"
)

type LeadRepo struct {
	collection *Collection[[]models.Lead]
	ids        *IDGenerator
	now        func() time.Time
}

func NewLeadRepo(path string, ids *IDGenerator) *LeadRepo {
	return &LeadRepo{
		collection: NewCollection("leads", path, func() []models.Lead { return []models.Lead{} }),
		ids:        ids,
		now:        time.Now,
	}
}

// FindAll returns every lead in arrival order.
func (r *LeadRepo) FindAll() []models.Lead {
	leads := r.collection.Load()
	if leads == nil {
		return []models.Lead{}
	}
	return leads
}

// FindByStatus returns the leads with the given status. An empty status matches everything.
func (r *LeadRepo) FindByStatus(status models.LeadStatus) []models.Lead {
	all := r.FindAll()
	if status == "" {
		return all
	}
	filtered := make([]models.Lead, 0, len(all))
	for _, l := range all {
		if l.Status == status {
			filtered = append(filtered, l)
		}
	}
	return filtered
}

func (r *LeadRepo) FindByID(id int64) (*models.Lead, error) {
	for _, l := range r.FindAll() {
		if l.ID == id {
			return &l, nil
		}
	}
	return nil, leadNotFound(id)
}

// Add validates the input and appends a new lead with status new unless one was given.
func (r *LeadRepo) Add(in models.LeadInput) (*models.Lead, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var created models.Lead
	err := r.collection.Update(func(leads *[]models.Lead) error {
		var floor int64
		for _, l := range *leads {
			floor = max(floor, l.ID)
		}
		created = models.NewLead(r.ids.Next(floor), in, r.now())
		if *leads == nil {
			*leads = []models.Lead{}
		}
		*leads = append(*leads, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateStatus moves a lead to another workflow status.
func (r *LeadRepo) UpdateStatus(id int64, status models.LeadStatus) (*models.Lead, error) {
	if !status.Valid() {
		return nil, errs.NewInvalidFieldError("status", "must be one of new, processed, completed")
	}

	var updated models.Lead
	err := r.collection.Update(func(leads *[]models.Lead) error {
		for i := range *leads {
			if (*leads)[i].ID == id {
				(*leads)[i].Status = status
				updated = (*leads)[i]
				return nil
			}
		}
		return leadNotFound(id)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *LeadRepo) Delete(id int64) (*models.Lead, error) {
	var removed models.Lead
	err := r.collection.Update(func(leads *[]models.Lead) error {
		for i, l := range *leads {
			if l.ID == id {
				removed = l
				*leads = append((*leads)[:i:i], (*leads)[i+1:]...)
				return nil
			}
		}
		return leadNotFound(id)
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

// Stats tallies the stored leads per status.
func (r *LeadRepo) Stats() models.LeadStats {
	return models.CountLeads(r.FindAll())
}

func leadNotFound(id int64) error {
	return errs.NewNotFound("lead", strconv.FormatInt(id, 10))
}
