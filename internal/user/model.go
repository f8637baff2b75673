// Package user はユーザードキュメントのモデルと永続化ストアを提供します。
package user

import "time"

// User はドキュメントストアに保存されるユーザーです。
// PasswordHash は json:"-" により、レスポンスへ直列化されることは決してありません。
type User struct {
	ID           string    `bson:"_id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	Name         string    `bson:"name" json:"name"`
	PasswordHash string    `bson:"password" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
}
