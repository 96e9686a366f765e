// Package mocks provides function-field mocks of the store, verifier and
// payment gateway interfaces, shared by the handler, middleware and router
// tests.
//
// Each mock exposes one Fn field per interface method. A nil Fn returns the
// mock's Err field or a zero result, so tests only set the behavior they
// assert on:
//
//	camps := &mocks.MockCampStore{
//	    GetByIDFn: func(ctx context.Context, id primitive.ObjectID) (*domain.Camp, error) {
//	        return nil, store.ErrCampNotFound
//	    },
//	}
//
// MockUserStore is the exception: it keeps an in-memory table keyed by email
// so the role gate and profile tests can seed users with NewMockUserStore.
package mocks
