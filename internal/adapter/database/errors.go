package database

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Enumeração fechada dos erros de persistência. A camada de serviço só
// conhece estes valores; nenhum código de erro específico de driver
// escapa deste pacote.
var (
	// ErrNotFound indica que o registro não existe
	ErrNotFound = errors.New("registro não encontrado")
	// ErrDuplicate indica violação de constraint de unicidade
	ErrDuplicate = errors.New("registro duplicado")
	// ErrForeignKey indica violação de chave estrangeira
	ErrForeignKey = errors.New("registro referenciado por outra entidade")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	mysqlDuplicateEntry   = 1062
	mysqlRowIsReferenced  = 1451
	mysqlNoReferencedRow  = 1452
	mysqlNoReferencedRow2 = 1216
)

// TranslateError converte erros do GORM e dos drivers para a enumeração
// fechada do adaptador
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrForeignKey
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrDuplicate
		case pgForeignKeyViolation:
			return ErrForeignKey
		}
		return err
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlDuplicateEntry:
			return ErrDuplicate
		case mysqlRowIsReferenced, mysqlNoReferencedRow, mysqlNoReferencedRow2:
			return ErrForeignKey
		}
		return err
	}

	// O driver sqlite puro-Go não expõe códigos tipados
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") {
		return ErrDuplicate
	}
	if strings.Contains(msg, "FOREIGN KEY constraint failed") {
		return ErrForeignKey
	}

	return err
}
