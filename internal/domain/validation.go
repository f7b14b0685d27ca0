package domain

import "fmt"

// Validate checks every question of the bank and reports the first offender.
func (b Bank) Validate() error {
	for i, q := range b.Questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("bank %q question %d: %w", b.ID, i+1, err)
		}
	}
	return nil
}

// Validate enforces that correct answers are drawn from the option values
// and that a multi choice answer holds no duplicates.
func (q Question) Validate() error {
	if q.Prompt == "" {
		return fmt.Errorf("%w: missing prompt", ErrInvalidQuestion)
	}

	switch q.Kind {
	case FreeText:
		if q.Correct.Multi {
			return fmt.Errorf("%w: text question needs a single correct answer", ErrInvalidQuestion)
		}
		if q.Correct.IsEmpty() {
			return fmt.Errorf("%w: missing correct answer", ErrInvalidQuestion)
		}
		return nil
	case SingleChoice, MultiChoice:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, q.Kind)
	}

	if len(q.Options) < 2 {
		return fmt.Errorf("%w: need at least two options", ErrInvalidQuestion)
	}
	values := make(map[string]struct{}, len(q.Options))
	for _, opt := range q.Options {
		values[opt.Value] = struct{}{}
	}

	if q.Kind == SingleChoice {
		if q.Correct.Multi {
			return fmt.Errorf("%w: single choice question needs a single correct answer", ErrInvalidQuestion)
		}
		if _, ok := values[q.Correct.Value]; !ok {
			return fmt.Errorf("%w: correct answer %q is not an option", ErrInvalidQuestion, q.Correct.Value)
		}
		return nil
	}

	if !q.Correct.Multi || len(q.Correct.Values) == 0 {
		return fmt.Errorf("%w: multi choice question needs a list of correct answers", ErrInvalidQuestion)
	}
	seen := make(map[string]struct{}, len(q.Correct.Values))
	for _, v := range q.Correct.Values {
		if _, ok := values[v]; !ok {
			return fmt.Errorf("%w: correct answer %q is not an option", ErrInvalidQuestion, v)
		}
		if _, dup := seen[v]; dup {
			return fmt.Errorf("%w: duplicate correct answer %q", ErrInvalidQuestion, v)
		}
		seen[v] = struct{}{}
	}
	return nil
}
