package service

import (
	"time"

	"coinvest/internal/models"
	"coinvest/internal/repository"
)

// fakeStore is an in-memory repository.Store for service tests. Getters
// return copies; only Save/Create write back, mirroring how a rolled-back
// transaction leaves no partial state on validation failures.
type fakeStore struct {
	users       map[uint]models.User
	deposits    map[uint]models.Deposit
	withdrawals map[uint]models.Withdrawal
	plans       map[uint]models.InvestmentPlan
	investments map[uint]models.Investment
	referrals   map[uint]models.Referral // keyed by referee ID
	entries     []models.LedgerEntry
	nextID      uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       make(map[uint]models.User),
		deposits:    make(map[uint]models.Deposit),
		withdrawals: make(map[uint]models.Withdrawal),
		plans:       make(map[uint]models.InvestmentPlan),
		investments: make(map[uint]models.Investment),
		referrals:   make(map[uint]models.Referral),
		nextID:      1,
	}
}

func (f *fakeStore) id() uint {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeStore) addUser(u models.User) uint {
	if u.ID == 0 {
		u.ID = f.id()
	}
	f.users[u.ID] = u
	return u.ID
}

func (f *fakeStore) addPlan(p models.InvestmentPlan) uint {
	if p.ID == 0 {
		p.ID = f.id()
	}
	f.plans[p.ID] = p
	return p.ID
}

func (f *fakeStore) addDeposit(d models.Deposit) uint {
	if d.ID == 0 {
		d.ID = f.id()
	}
	f.deposits[d.ID] = d
	return d.ID
}

func (f *fakeStore) addReferral(r models.Referral) {
	if r.ID == 0 {
		r.ID = f.id()
	}
	f.referrals[r.RefereeID] = r
}

func (f *fakeStore) addInvestment(inv models.Investment) uint {
	if inv.ID == 0 {
		inv.ID = f.id()
	}
	f.investments[inv.ID] = inv
	return inv.ID
}

func (f *fakeStore) Atomically(fn func(tx repository.Store) error) error {
	return fn(f)
}

func (f *fakeStore) UserByID(id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := u
	return &cp, nil
}

func (f *fakeStore) UserForUpdate(id uint) (*models.User, error) { return f.UserByID(id) }

func (f *fakeStore) SaveUser(u *models.User) error {
	f.users[u.ID] = *u
	return nil
}

func (f *fakeStore) DepositForUpdate(id uint) (*models.Deposit, error) {
	d, ok := f.deposits[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := d
	return &cp, nil
}

func (f *fakeStore) SaveDeposit(d *models.Deposit) error {
	f.deposits[d.ID] = *d
	return nil
}

func (f *fakeStore) CreateDeposit(d *models.Deposit) error {
	d.ID = f.id()
	f.deposits[d.ID] = *d
	return nil
}

func (f *fakeStore) CreateWithdrawal(w *models.Withdrawal) error {
	w.ID = f.id()
	f.withdrawals[w.ID] = *w
	return nil
}

func (f *fakeStore) WithdrawalForUpdate(id uint) (*models.Withdrawal, error) {
	w, ok := f.withdrawals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := w
	return &cp, nil
}

func (f *fakeStore) SaveWithdrawal(w *models.Withdrawal) error {
	f.withdrawals[w.ID] = *w
	return nil
}

func (f *fakeStore) DeleteWithdrawal(w *models.Withdrawal) error {
	delete(f.withdrawals, w.ID)
	return nil
}

func (f *fakeStore) PlanByID(id uint) (*models.InvestmentPlan, error) {
	p, ok := f.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (f *fakeStore) CreateInvestment(inv *models.Investment) error {
	inv.ID = f.id()
	f.investments[inv.ID] = *inv
	return nil
}

func (f *fakeStore) InvestmentForUpdate(id uint) (*models.Investment, error) {
	inv, ok := f.investments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := inv
	return &cp, nil
}

func (f *fakeStore) SaveInvestment(inv *models.Investment) error {
	f.investments[inv.ID] = *inv
	return nil
}

func (f *fakeStore) DueInvestmentIDs(now time.Time, limit int) ([]uint, error) {
	var ids []uint
	for id, inv := range f.investments {
		if inv.Status == "active" && !inv.EndDate.After(now) {
			ids = append(ids, id)
		}
		if len(ids) >= limit {
			break
		}
	}
	return ids, nil
}

func (f *fakeStore) ReferralByReferee(refereeID uint) (*models.Referral, error) {
	r, ok := f.referrals[refereeID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := r
	return &cp, nil
}

func (f *fakeStore) SaveReferral(r *models.Referral) error {
	f.referrals[r.RefereeID] = *r
	return nil
}

func (f *fakeStore) AppendEntry(e *models.LedgerEntry) error {
	e.ID = f.id()
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeStore) HasEntry(entryType, reference string) (bool, error) {
	for _, e := range f.entries {
		if e.Type == entryType && e.Reference == reference {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) countEntries(entryType string) int {
	n := 0
	for _, e := range f.entries {
		if e.Type == entryType {
			n++
		}
	}
	return n
}
