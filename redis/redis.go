package redis

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

func InitRedis() {
	Client = redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		DB:   0,
	})

	// Test connection
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("Connected to Redis")
}

// OTPTTL is how long an email verification code stays valid.
const OTPTTL = 10 * time.Minute

func otpKey(email string) string {
	return "otp:" + email
}

// StoreOTP saves a verification code for the email with expiry.
func StoreOTP(email, otp string) error {
	return Client.Set(Ctx, otpKey(email), otp, OTPTTL).Err()
}

// VerifyOTP checks the code against the stored one and consumes it on
// success.
func VerifyOTP(email, otp string) (bool, error) {
	stored, err := Client.Get(Ctx, otpKey(email)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if stored != otp {
		return false, nil
	}
	Client.Del(Ctx, otpKey(email))
	return true, nil
}
