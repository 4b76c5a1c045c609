package domain

import "errors"

var ErrAuthentication = errors.New("authentication failed")
var ErrWrite = errors.New("write rejected")
var ErrDuplicateKey = errors.New("duplicate key")
var ErrSeedInProgress = errors.New("another seed run holds the lock")
var ErrVerification = errors.New("seeded database failed verification")
var ErrInvalidFixture = errors.New("invalid seed fixture")
var ErrInvalidMode = errors.New("invalid seed mode")
var ErrInvalidPassword = errors.New("invalid admin password configuration")
var ErrUserNotFound = errors.New("user not found")
