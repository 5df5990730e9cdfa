package record

import (
	"context"
	"sync"

	domain "github.com/BruksfildServices01/clinic-ledger/internal/domain/record"
	"github.com/BruksfildServices01/clinic-ledger/internal/httperr"
	"github.com/BruksfildServices01/clinic-ledger/internal/models"
	"github.com/BruksfildServices01/clinic-ledger/internal/timezone"
)

type fakeState struct {
	nextID      uint
	services    map[uint]models.Service
	clients     map[uint]models.Client
	users       map[uint]models.User
	records     map[uint]models.Record
	completions []models.RecordCompletion
	incomes     map[uint]models.Income // keyed by record id
}

func (s fakeState) clone() fakeState {
	out := s
	out.records = make(map[uint]models.Record, len(s.records))
	for k, v := range s.records {
		out.records[k] = v
	}
	out.incomes = make(map[uint]models.Income, len(s.incomes))
	for k, v := range s.incomes {
		out.incomes[k] = v
	}
	out.completions = append([]models.RecordCompletion(nil), s.completions...)
	return out
}

// fakeRepo keeps everything in memory. Transactions are serialized and roll
// back on error, like a row lock plus a real transaction would.
type fakeRepo struct {
	txMu sync.Mutex
	mu   sync.Mutex
	st   fakeState
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{st: fakeState{
		nextID: 100,
		services: map[uint]models.Service{
			1: {ID: 1, Name: "Consultation", Price: 100, Active: true},
			2: {ID: 2, Name: "Therapy", Price: 250, Active: true},
			3: {ID: 3, Name: "Retired", Price: 80, Active: false},
		},
		clients: map[uint]models.Client{
			10: {ID: 10, Name: "Maria"},
		},
		users: map[uint]models.User{
			20: {ID: 20, FullName: "Ana", Role: "employee"},
			21: {ID: 21, FullName: "Bruno", Role: "employee"},
			22: {ID: 22, FullName: "Carla", Role: "manager"},
		},
		records: map[uint]models.Record{},
		incomes: map[uint]models.Income{},
	}}
}

func (r *fakeRepo) id() uint {
	r.st.nextID++
	return r.st.nextID
}

func (r *fakeRepo) Transaction(ctx context.Context, fn func(tx domain.Repository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()

	r.mu.Lock()
	snapshot := r.st.clone()
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.st = snapshot
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *fakeRepo) GetService(ctx context.Context, id uint) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.st.services[id]
	if !ok {
		return nil, httperr.ErrNotFound("service_not_found")
	}
	return &s, nil
}

func (r *fakeRepo) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.st.clients[id]
	if !ok {
		return nil, httperr.ErrNotFound("client_not_found")
	}
	return &c, nil
}

func (r *fakeRepo) GetUser(ctx context.Context, id uint) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.st.users[id]
	if !ok {
		return nil, httperr.ErrNotFound("user_not_found")
	}
	return &u, nil
}

func (r *fakeRepo) CreateRecord(ctx context.Context, rec *models.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec.ID = r.id()
	stored := *rec
	stored.Client = nil
	stored.Service = models.Service{}
	r.st.records[rec.ID] = stored
	return nil
}

func (r *fakeRepo) loadRecord(id uint) (*models.Record, error) {
	rec, ok := r.st.records[id]
	if !ok {
		return nil, httperr.ErrNotFound("record_not_found")
	}
	rec.Service = r.st.services[rec.ServiceID]
	if rec.ClientID != nil {
		c := r.st.clients[*rec.ClientID]
		rec.Client = &c
	}
	return &rec, nil
}

func (r *fakeRepo) GetRecord(ctx context.Context, id uint) (*models.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadRecord(id)
}

func (r *fakeRepo) GetRecordForUpdate(ctx context.Context, id uint) (*models.Record, error) {
	return r.GetRecord(ctx, id)
}

func (r *fakeRepo) SaveRecord(ctx context.Context, rec *models.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *rec
	stored.Client = nil
	stored.Service = models.Service{}
	r.st.records[rec.ID] = stored
	return nil
}

func (r *fakeRepo) ListRecords(ctx context.Context, rg timezone.Range) ([]models.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Record
	for id, rec := range r.st.records {
		if rec.Date >= rg.Start && rec.Date <= rg.End {
			loaded, _ := r.loadRecord(id)
			out = append(out, *loaded)
		}
	}
	return out, nil
}

func (r *fakeRepo) DeleteRecordCascade(ctx context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.st.completions[:0]
	for _, c := range r.st.completions {
		if c.RecordID != id {
			kept = append(kept, c)
		}
	}
	r.st.completions = kept
	delete(r.st.incomes, id)
	delete(r.st.records, id)
	return nil
}

func (r *fakeRepo) CreateCompletion(ctx context.Context, c *models.RecordCompletion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = r.id()
	r.st.completions = append(r.st.completions, *c)
	return nil
}

func (r *fakeRepo) ListCompletions(ctx context.Context, recordID uint) ([]models.RecordCompletion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.RecordCompletion
	for _, c := range r.st.completions {
		if c.RecordID == recordID {
			c.Employee = r.st.users[c.EmployeeID]
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeRepo) InsertRecordIncome(ctx context.Context, inc *models.Income) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.st.incomes[*inc.RecordID]; exists {
		return false, nil
	}
	inc.ID = r.id()
	r.st.incomes[*inc.RecordID] = *inc
	return true, nil
}

func (r *fakeRepo) GetRecordIncome(ctx context.Context, recordID uint) (*models.Income, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inc, ok := r.st.incomes[recordID]
	if !ok {
		return nil, httperr.ErrNotFound("income_not_found")
	}
	return &inc, nil
}

func (r *fakeRepo) incomeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.st.incomes)
}

var _ domain.Repository = (*fakeRepo)(nil)
