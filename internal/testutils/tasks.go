package testutils

import "github.com/phrazzld/taskbin/internal/domain"

// DeletedTask builds a deleted task fixture.
func DeletedTask(id int64, title, description, deletedAt string) domain.DeletedTask {
	return domain.DeletedTask{
		Task:      domain.Task{ID: id, Title: title, Description: description},
		DeletedAt: deletedAt,
	}
}
