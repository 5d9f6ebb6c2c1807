package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
)

func TestRedisCache_Get_Hit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, time.Hour, "test:")

	mock.ExpectGet("test:mykey").SetVal("Hola")

	val, ok := c.Get(context.Background(), "mykey")
	if !ok {
		t.Error("expected cache hit")
	}
	if val != "Hola" {
		t.Errorf("expected 'Hola', got %q", val)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedisCache_Get_Miss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, time.Hour, "test:")

	mock.ExpectGet("test:mykey").RedisNil()

	if _, ok := c.Get(context.Background(), "mykey"); ok {
		t.Error("expected cache miss")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedisCache_Get_ErrorIsMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, time.Hour, "test:")

	mock.ExpectGet("test:mykey").SetErr(errors.New("connection refused"))

	if _, ok := c.Get(context.Background(), "mykey"); ok {
		t.Error("expected redis error to be reported as a miss")
	}
}

func TestRedisCache_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, time.Hour, "test:")

	mock.ExpectSet("test:mykey", "Hola", time.Hour).SetVal("OK")

	if err := c.Set(context.Background(), "mykey", "Hola"); err != nil {
		t.Errorf("Set failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedisCache_DefaultPrefixNoTTL(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	c := NewRedisCacheFromClient(db, 0, "")

	mock.ExpectSet("tlpad:k", "v", 0).SetVal("OK")

	if err := c.Set(context.Background(), "k", "v"); err != nil {
		t.Errorf("Set failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
