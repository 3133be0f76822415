package sqlinline

// QInsertUserWithCompany creates the user row and its company profile in a
// single statement so registration is all-or-nothing: a failure on either
// table (including a duplicate username) leaves no rows behind.
const QInsertUserWithCompany = `--sql 3f6c21aa-8e4b-4c1d-9a5e-0d7b4f2c8e11
with new_user as (
    insert into users (username, password_hash)
    values ($1, $2)
    returning id, username, created_at
),
new_company as (
    insert into companies (user_id, owner_name, company_name, address, phone_number)
    select id, $3, $4, $5, $6 from new_user
    returning user_id
)
select u.id, u.username, u.created_at
from new_user u
join new_company c on c.user_id = u.id;
`

const QSelectUserByUsername = `--sql 7b1d94ce-2f38-4a06-b8c1-5e9a3d0f6a42
select id, username, password_hash, is_active, created_at
from users
where username = $1
limit 1;
`
