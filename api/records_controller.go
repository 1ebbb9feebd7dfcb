package api

import (
	"github.com/gofiber/fiber/v2"
	auth "github.com/goliatone/go-bookquotes-auth"
	"github.com/goliatone/go-bookquotes-auth/records"
)

// RecordBinding tells a RecordController how to move one record type
// across the wire.
type RecordBinding[T records.Record] struct {
	// Decode parses the request body into a fresh record
	Decode func(c *fiber.Ctx) (T, error)
	// Apply copies the editable fields of src onto dst
	Apply func(dst, src T)
	// Present renders a record for responses
	Present func(T) any
}

// RecordController serves the CRUD surface of one owned record type.
// Reads are open to any authenticated caller, writes go through the
// ownership guard in records.Service.
type RecordController[T records.Record] struct {
	Logger  auth.Logger
	Service *records.Service[T]
	Binding RecordBinding[T]
	// Mine is the path segment for the caller's own records
	Mine string
}

func NewRecordController[T records.Record](service *records.Service[T], mine string, binding RecordBinding[T]) *RecordController[T] {
	return &RecordController[T]{
		Logger:  auth.DefaultLogger(),
		Service: service,
		Binding: binding,
		Mine:    mine,
	}
}

func (r *RecordController[T]) WithLogger(logger auth.Logger) *RecordController[T] {
	if logger != nil {
		r.Logger = logger
	}
	return r
}

// Register mounts the controller on router
func (r *RecordController[T]) Register(router fiber.Router) {
	router.Get("/", r.List)
	router.Get("/"+r.Mine, r.ListMine)
	router.Post("/", r.Create)
	router.Put("/:id", r.Update)
	router.Delete("/:id", r.Delete)
}

func (r *RecordController[T]) List(c *fiber.Ctx) error {
	if _, err := auth.UserIDFromContext(c.UserContext()); err != nil {
		return err
	}

	items, err := r.Service.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(r.present(items))
}

func (r *RecordController[T]) ListMine(c *fiber.Ctx) error {
	callerID, err := auth.UserIDFromContext(c.UserContext())
	if err != nil {
		return err
	}

	items, err := r.Service.ListByOwner(c.UserContext(), callerID)
	if err != nil {
		return err
	}
	return c.JSON(r.present(items))
}

func (r *RecordController[T]) Create(c *fiber.Ctx) error {
	callerID, err := auth.UserIDFromContext(c.UserContext())
	if err != nil {
		return err
	}

	record, err := r.Binding.Decode(c)
	if err != nil {
		r.Logger.Debug("create parse payload: %s", err)
		return errBadPayload(err)
	}

	created, err := r.Service.Create(c.UserContext(), callerID, record)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(r.Binding.Present(created))
}

func (r *RecordController[T]) Update(c *fiber.Ctx) error {
	callerID, err := auth.UserIDFromContext(c.UserContext())
	if err != nil {
		return err
	}

	id, err := recordID(c)
	if err != nil {
		return err
	}

	changes, err := r.Binding.Decode(c)
	if err != nil {
		r.Logger.Debug("update parse payload: %s", err)
		return errBadPayload(err)
	}

	updated, err := r.Service.Update(c.UserContext(), callerID, id, func(current T) {
		r.Binding.Apply(current, changes)
	})
	if err != nil {
		return err
	}

	return c.JSON(r.Binding.Present(updated))
}

func (r *RecordController[T]) Delete(c *fiber.Ctx) error {
	callerID, err := auth.UserIDFromContext(c.UserContext())
	if err != nil {
		return err
	}

	id, err := recordID(c)
	if err != nil {
		return err
	}

	if err := r.Service.Delete(c.UserContext(), callerID, id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (r *RecordController[T]) present(items []T) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, r.Binding.Present(item))
	}
	return out
}

// recordID reads the :id param. Anything that is not a positive integer
// does not name a record.
func recordID(c *fiber.Ctx) (int64, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, auth.ErrRecordNotFound
	}
	return int64(id), nil
}

// BookBinding moves books across the wire
func BookBinding() RecordBinding[*records.Book] {
	return RecordBinding[*records.Book]{
		Decode: func(c *fiber.Ctx) (*records.Book, error) {
			payload := new(BookRequest)
			if err := c.BodyParser(payload); err != nil {
				return nil, err
			}
			return payload.Record(), nil
		},
		Apply: func(dst, src *records.Book) {
			dst.Title = src.Title
			dst.Author = src.Author
			dst.Published = src.Published
		},
		Present: func(b *records.Book) any { return NewBookDTO(b) },
	}
}

// QuoteBinding moves quotes across the wire
func QuoteBinding() RecordBinding[*records.Quote] {
	return RecordBinding[*records.Quote]{
		Decode: func(c *fiber.Ctx) (*records.Quote, error) {
			payload := new(QuoteRequest)
			if err := c.BodyParser(payload); err != nil {
				return nil, err
			}
			return payload.Record(), nil
		},
		Apply: func(dst, src *records.Quote) {
			dst.Text = src.Text
			dst.Author = src.Author
			dst.Source = src.Source
		},
		Present: func(q *records.Quote) any { return NewQuoteDTO(q) },
	}
}
