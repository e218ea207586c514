// Package form implements the create and edit forms for businesses,
// products and services.
//
// A form cannot be submitted until a location has been picked. A failed
// submission keeps everything the user typed; a successful one clears the
// form.
package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Veraticus/soko/internal/common"
	"github.com/Veraticus/soko/internal/model"
	"github.com/Veraticus/soko/internal/service"
)

// Advisory messages.
const (
	MsgLocationRequired = "Please select a location on the map"
	MsgEnhanceFailed    = "AI enhancement failed. Using your original description."
	MsgTagsFailed       = "AI tagging failed. You can add tags yourself."
)

// Status is what the form shows around the fields.
type Status struct {
	Error      string
	Advisory   string
	Submitting bool
	Success    bool
}

// Form drives one create or edit form.
type Form[T model.Listing, In any, D Draft[In]] struct {
	writer    service.ListingWriter[T, In]
	assistant service.Assistant
	blank     func() D
	draft     D
	status    Status
	kind      model.Kind
	editID    int
	mu        sync.Mutex
}

func newForm[T model.Listing, In any, D Draft[In]](kind model.Kind, writer service.ListingWriter[T, In], assistant service.Assistant, blank func() D, draft D, editID int) *Form[T, In, D] {
	return &Form[T, In, D]{
		kind:      kind,
		writer:    writer,
		assistant: assistant,
		blank:     blank,
		draft:     draft,
		editID:    editID,
	}
}

// NewServiceForm creates an empty service form.
func NewServiceForm(writer service.ListingWriter[model.Service, model.ServiceInput], assistant service.Assistant) *Form[model.Service, model.ServiceInput, *ServiceDraft] {
	return newForm(model.KindService, writer, assistant, NewServiceDraft, NewServiceDraft(), 0)
}

// EditServiceForm creates a form pre-filled from svc that updates it.
func EditServiceForm(writer service.ListingWriter[model.Service, model.ServiceInput], assistant service.Assistant, svc model.Service) *Form[model.Service, model.ServiceInput, *ServiceDraft] {
	return newForm(model.KindService, writer, assistant, NewServiceDraft, ServiceDraftFrom(svc), svc.ID)
}

// NewProductForm creates an empty product form.
func NewProductForm(writer service.ListingWriter[model.Product, model.ProductInput], assistant service.Assistant) *Form[model.Product, model.ProductInput, *ProductDraft] {
	return newForm(model.KindProduct, writer, assistant, NewProductDraft, NewProductDraft(), 0)
}

// EditProductForm creates a form pre-filled from p that updates it.
func EditProductForm(writer service.ListingWriter[model.Product, model.ProductInput], assistant service.Assistant, p model.Product) *Form[model.Product, model.ProductInput, *ProductDraft] {
	return newForm(model.KindProduct, writer, assistant, NewProductDraft, ProductDraftFrom(p), p.ID)
}

// NewBusinessForm creates an empty business form.
func NewBusinessForm(writer service.ListingWriter[model.Business, model.BusinessInput], assistant service.Assistant) *Form[model.Business, model.BusinessInput, *BusinessDraft] {
	return newForm(model.KindBusiness, writer, assistant, NewBusinessDraft, NewBusinessDraft(), 0)
}

// EditBusinessForm creates a form pre-filled from b that updates it.
func EditBusinessForm(writer service.ListingWriter[model.Business, model.BusinessInput], assistant service.Assistant, b model.Business) *Form[model.Business, model.BusinessInput, *BusinessDraft] {
	return newForm(model.KindBusiness, writer, assistant, NewBusinessDraft, BusinessDraftFrom(b), b.ID)
}

// Draft returns the editable draft.
func (f *Form[T, In, D]) Draft() D {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Editing reports whether the form updates an existing listing.
func (f *Form[T, In, D]) Editing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.editID > 0
}

// Status returns the current status.
func (f *Form[T, In, D]) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Ready reports whether Submit may be called: a location is picked and no
// submission is in flight.
func (f *Form[T, In, D]) Ready() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ready()
}

func (f *Form[T, In, D]) ready() bool {
	return !f.status.Submitting && f.draft.Position() != nil
}

// Submit sends the draft. Without a location it fails with
// common.ErrLocationRequired and nothing is sent.
func (f *Form[T, In, D]) Submit(ctx context.Context) (*T, error) {
	f.mu.Lock()
	if f.status.Submitting {
		f.mu.Unlock()
		return nil, common.ErrSubmitInFlight
	}
	if f.draft.Position() == nil {
		f.status.Error = MsgLocationRequired
		f.status.Success = false
		f.mu.Unlock()
		return nil, common.ErrLocationRequired
	}

	in, err := f.draft.Input()
	if err != nil {
		f.status.Error = validationMessage(err)
		f.status.Success = false
		f.mu.Unlock()
		return nil, err
	}

	f.status = Status{Submitting: true, Advisory: f.status.Advisory}
	editID := f.editID
	f.mu.Unlock()

	var result *T
	if editID > 0 {
		result, err = f.writer.Update(ctx, editID, in)
	} else {
		result, err = f.writer.Create(ctx, in)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.status.Submitting = false

	if err != nil {
		slog.Error("Submit failed", "kind", f.kind, "id", editID, "error", err)
		f.status.Error = fmt.Sprintf("Failed to save %s. Please try again.", f.kind.Singular())
		return nil, err
	}

	slog.Info("Saved listing", "kind", f.kind, "updated", editID > 0)
	f.draft = f.blank()
	f.editID = 0
	f.status = Status{Success: true}
	return result, nil
}

// Enhance replaces the description with the assistant's improved version.
// Failure leaves the description untouched and sets an advisory.
func (f *Form[T, In, D]) Enhance(ctx context.Context) error {
	f.mu.Lock()
	text := f.draft.Text()
	draft := f.draft
	f.mu.Unlock()

	if f.assistant == nil || strings.TrimSpace(text) == "" {
		return nil
	}

	enhanced, err := f.assistant.EnhanceText(ctx, text)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil || strings.TrimSpace(enhanced) == "" {
		if err == nil {
			err = errors.New("empty enhancement")
		}
		slog.Warn("Description enhancement failed", "error", err)
		f.status.Advisory = MsgEnhanceFailed
		return err
	}
	// The draft may have been replaced by a concurrent successful submit.
	if any(f.draft) == any(draft) {
		f.draft.SetText(enhanced)
	}
	f.status.Advisory = ""
	return nil
}

// tagger is implemented by drafts that carry AI tags.
type tagger interface {
	SetTags([]string)
}

// GenerateTags asks the assistant for tags describing the draft. Drafts
// without tags ignore the call.
func (f *Form[T, In, D]) GenerateTags(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	text := f.draft.Text()
	target, ok := any(f.draft).(tagger)
	f.mu.Unlock()

	if !ok || f.assistant == nil || strings.TrimSpace(text) == "" {
		return nil, nil
	}

	tags, err := f.assistant.GenerateTags(ctx, text)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		slog.Warn("Tag generation failed", "error", err)
		f.status.Advisory = MsgTagsFailed
		return nil, err
	}
	target.SetTags(tags)
	f.status.Advisory = ""
	return tags, nil
}

func validationMessage(err error) string {
	msg := err.Error()
	if prefix := common.ErrInvalidInput.Error() + ": "; strings.HasPrefix(msg, prefix) {
		msg = strings.TrimPrefix(msg, prefix)
	}
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
