package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookModel "library-api/internal/domains/book/model"
	"library-api/internal/domains/loan/model"
	"library-api/internal/shared"
)

type fakeLoanRepo struct {
	CreateFn             func(ctx context.Context, l *model.Loan) (*model.Loan, error)
	GetByIDFn            func(ctx context.Context, id uuid.UUID) (*model.Loan, error)
	ExistsActiveByBookFn func(ctx context.Context, bookID uuid.UUID) (bool, error)
	UpdateFn             func(ctx context.Context, l *model.Loan) (*model.Loan, error)
	FindFn               func(ctx context.Context, filter model.LoanFilter) ([]model.Loan, int64, error)
	FindByBookFn         func(ctx context.Context, bookID uuid.UUID, page shared.PageRequest) ([]model.Loan, int64, error)

	createCalls      int
	existsCheckCalls int
	updateCalls      int
}

func (f *fakeLoanRepo) Create(ctx context.Context, l *model.Loan) (*model.Loan, error) {
	f.createCalls++
	if f.CreateFn != nil {
		return f.CreateFn(ctx, l)
	}
	created := *l
	created.ID = uuid.New()
	return &created, nil
}

func (f *fakeLoanRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Loan, error) {
	if f.GetByIDFn != nil {
		return f.GetByIDFn(ctx, id)
	}
	return nil, model.ErrLoanNotFound
}

func (f *fakeLoanRepo) ExistsActiveByBook(ctx context.Context, bookID uuid.UUID) (bool, error) {
	f.existsCheckCalls++
	if f.ExistsActiveByBookFn != nil {
		return f.ExistsActiveByBookFn(ctx, bookID)
	}
	return false, nil
}

func (f *fakeLoanRepo) Update(ctx context.Context, l *model.Loan) (*model.Loan, error) {
	f.updateCalls++
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, l)
	}
	return l, nil
}

func (f *fakeLoanRepo) Find(ctx context.Context, filter model.LoanFilter) ([]model.Loan, int64, error) {
	if f.FindFn != nil {
		return f.FindFn(ctx, filter)
	}
	return nil, 0, nil
}

func (f *fakeLoanRepo) FindByBook(ctx context.Context, bookID uuid.UUID, page shared.PageRequest) ([]model.Loan, int64, error) {
	if f.FindByBookFn != nil {
		return f.FindByBookFn(ctx, bookID, page)
	}
	return nil, 0, nil
}

// fakeBookService implements the book service contract the loan
// service depends on. Only GetByIsbn/GetByID matter here.
type fakeBookService struct {
	books map[string]*bookModel.Book
}

func newFakeBookService(books ...*bookModel.Book) *fakeBookService {
	m := make(map[string]*bookModel.Book, len(books))
	for _, b := range books {
		m[b.Isbn] = b
	}
	return &fakeBookService{books: m}
}

func (f *fakeBookService) Create(ctx context.Context, req *bookModel.CreateBookRequest) (*bookModel.Book, error) {
	return nil, nil
}

func (f *fakeBookService) GetByID(ctx context.Context, id uuid.UUID) (*bookModel.Book, error) {
	for _, b := range f.books {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, bookModel.ErrBookNotFound
}

func (f *fakeBookService) GetByIsbn(ctx context.Context, isbn string) (*bookModel.Book, error) {
	if b, ok := f.books[isbn]; ok {
		return b, nil
	}
	return nil, bookModel.ErrBookNotFound
}

func (f *fakeBookService) Update(ctx context.Context, b *bookModel.Book) (*bookModel.Book, error) {
	return b, nil
}

func (f *fakeBookService) Delete(ctx context.Context, b *bookModel.Book) error {
	return nil
}

func (f *fakeBookService) Find(ctx context.Context, filter bookModel.BookFilter) ([]bookModel.Book, int64, error) {
	return nil, 0, nil
}

func testBook() *bookModel.Book {
	return &bookModel.Book{
		ID:     uuid.New(),
		Title:  "As aventuras",
		Author: "Arthur",
		Isbn:   "123456",
	}
}

func TestLoanService_Create_Success(t *testing.T) {
	book := testBook()
	repo := &fakeLoanRepo{}
	svc := NewLoanService(repo, newFakeBookService(book))

	loan, err := svc.Create(context.Background(), &model.CreateLoanRequest{
		Isbn:     "123456",
		Customer: "Fulano",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, loan.ID)
	assert.Equal(t, "Fulano", loan.Customer)
	assert.Equal(t, book.ID, loan.BookID)
	assert.Equal(t, book.Isbn, loan.BookIsbn)
	assert.Nil(t, loan.Returned, "a fresh loan is outstanding")
}

func TestLoanService_Create_DefaultsLoanDateToToday(t *testing.T) {
	book := testBook()
	repo := &fakeLoanRepo{}
	svc := NewLoanService(repo, newFakeBookService(book))

	loan, err := svc.Create(context.Background(), &model.CreateLoanRequest{
		Isbn:     "123456",
		Customer: "Fulano",
	})

	require.NoError(t, err)
	assert.False(t, loan.LoanDate.IsZero())
	assert.WithinDuration(t, time.Now(), loan.LoanDate.Time, 24*time.Hour)
}

func TestLoanService_Create_KeepsCallerLoanDate(t *testing.T) {
	book := testBook()
	repo := &fakeLoanRepo{}
	svc := NewLoanService(repo, newFakeBookService(book))

	when := model.Date{Time: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)}
	loan, err := svc.Create(context.Background(), &model.CreateLoanRequest{
		Isbn:     "123456",
		Customer: "Fulano",
		LoanDate: when,
	})

	require.NoError(t, err)
	assert.Equal(t, when, loan.LoanDate)
}

func TestLoanService_Create_UnknownIsbn(t *testing.T) {
	repo := &fakeLoanRepo{}
	svc := NewLoanService(repo, newFakeBookService())

	loan, err := svc.Create(context.Background(), &model.CreateLoanRequest{
		Isbn:     "999",
		Customer: "Fulano",
	})

	require.ErrorIs(t, err, model.ErrBookNotFoundForIsbn)
	assert.EqualError(t, err, "Book not found for passed isbn")
	assert.Nil(t, loan)
	assert.Zero(t, repo.createCalls)
}

func TestLoanService_Create_BookAlreadyLoaned(t *testing.T) {
	book := testBook()
	repo := &fakeLoanRepo{
		ExistsActiveByBookFn: func(ctx context.Context, bookID uuid.UUID) (bool, error) {
			return bookID == book.ID, nil
		},
	}
	svc := NewLoanService(repo, newFakeBookService(book))

	loan, err := svc.Create(context.Background(), &model.CreateLoanRequest{
		Isbn:     "123456",
		Customer: "Fulano",
	})

	require.ErrorIs(t, err, model.ErrBookAlreadyLoaned)
	assert.EqualError(t, err, "Book already loaned")
	assert.Nil(t, loan)
	assert.Zero(t, repo.createCalls, "rejected loan must never be persisted")
}

func TestLoanService_Return_SetsFlagWithoutInvariantRecheck(t *testing.T) {
	stored := &model.Loan{
		ID:       uuid.New(),
		Customer: "Fulano",
		BookID:   uuid.New(),
		LoanDate: model.Today(),
	}
	repo := &fakeLoanRepo{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*model.Loan, error) {
			if id == stored.ID {
				l := *stored
				return &l, nil
			}
			return nil, model.ErrLoanNotFound
		},
	}
	svc := NewLoanService(repo, newFakeBookService())

	loan, err := svc.Return(context.Background(), stored.ID, true)

	require.NoError(t, err)
	require.NotNil(t, loan.Returned)
	assert.True(t, *loan.Returned)
	assert.Equal(t, 1, repo.updateCalls)
	assert.Zero(t, repo.existsCheckCalls, "return must not re-check the outstanding invariant")
}

func TestLoanService_Return_NotFound(t *testing.T) {
	repo := &fakeLoanRepo{}
	svc := NewLoanService(repo, newFakeBookService())

	loan, err := svc.Return(context.Background(), uuid.New(), true)

	require.ErrorIs(t, err, model.ErrLoanNotFound)
	assert.Nil(t, loan)
	assert.Zero(t, repo.updateCalls)
}

func TestLoanService_Find_PassesUnionFilterThrough(t *testing.T) {
	var got model.LoanFilter
	repo := &fakeLoanRepo{
		FindFn: func(ctx context.Context, filter model.LoanFilter) ([]model.Loan, int64, error) {
			got = filter
			return nil, 0, nil
		},
	}
	svc := NewLoanService(repo, newFakeBookService())

	_, _, err := svc.Find(context.Background(), model.LoanFilter{
		Isbn:     "123456",
		Customer: "Fulano",
	})

	require.NoError(t, err)
	assert.Equal(t, "123456", got.Isbn)
	assert.Equal(t, "Fulano", got.Customer)
	assert.Equal(t, 20, got.Limit)
}

func TestLoanService_FindByBook_UnknownBook(t *testing.T) {
	repo := &fakeLoanRepo{}
	svc := NewLoanService(repo, newFakeBookService())

	_, _, err := svc.FindByBook(context.Background(), uuid.New(), shared.PageRequest{})

	assert.ErrorIs(t, err, bookModel.ErrBookNotFound)
}
